package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
)

// Event is one Server-Sent Event frame.
type Event struct {
	ID   string
	Name string
	Data []byte
}

// Stream event names sent by the API.
const (
	EventConnected    = "connected"
	EventNotification = "notification"
	EventHeartbeat    = "heartbeat"
)

// Stream opens the notification push stream and calls fn for every event
// until the server closes the connection, ctx is cancelled or reading fails.
func (c *Client) Stream(ctx context.Context, fn func(Event)) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("/api/notifications/stream", nil), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return errorFrom(resp.StatusCode, raw)
	}
	err = readEvents(resp.Body, fn)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// readEvents parses an event stream. Frames end at a blank line and several
// data lines join with '\n'. A frame cut off by EOF is dropped.
func readEvents(r io.Reader, fn func(Event)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	var (
		ev      Event
		data    bytes.Buffer
		hasData bool
	)
	dispatch := func() {
		if hasData || ev.Name != "" {
			ev.Data = append([]byte(nil), data.Bytes()...)
			if ev.Name == "" {
				ev.Name = "message"
			}
			fn(ev)
		}
		ev = Event{}
		data.Reset()
		hasData = false
	}

	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			dispatch()
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.Name = value
		case "id":
			ev.ID = value
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		}
	}
	return sc.Err()
}
