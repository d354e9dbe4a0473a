package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/realtime"
	"warga-be-svc/pkg/logger"
)

// snapshotStream serves one live-collection subscription over SSE. The full
// current result set is sent on connect and again after every change signal;
// the subscription is torn down when the client goes away.
func snapshotStream(
	c *gin.Context,
	hub *realtime.Hub,
	log *logger.Logger,
	topic realtime.Topic,
	scope uint,
	load func() (interface{}, error),
) {
	ch, cancel := hub.Subscribe(topic, scope)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	send := func() {
		snapshot, err := load()
		if err != nil {
			// A failed read freezes the stream at the last snapshot; the
			// client sees no further events until the next change.
			log.WithError(err).WithField("topic", string(topic)).Error("Failed to load snapshot")
			return
		}
		c.SSEvent("snapshot", snapshot)
		c.Writer.Flush()
	}

	send()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ch:
			send()
			return true
		}
	})
}
