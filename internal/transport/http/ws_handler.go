package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"flashquiz/internal/app"
	"flashquiz/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service       *app.QuizService
	defaultDeckID string
	logger        *slog.Logger
	upgrader      websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaultDeckID string, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		service:       service,
		defaultDeckID: defaultDeckID,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type textPayload struct {
	Text *string `json:"text"`
}

type feedbackPayload struct {
	Kind    domain.Feedback `json:"kind"`
	Message string          `json:"message"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and gives each connection its own quiz session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	deckID := r.URL.Query().Get("deckId")
	if deckID == "" {
		deckID = h.defaultDeckID
	}
	if deckID == "" {
		http.Error(w, "missing deckId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("conn_id", uuid.NewString(), "deck_id", deckID)
	send := make(chan outboundMessage[any], 16)

	ctrl, err := h.service.Start(r.Context(), deckID,
		app.WithNotifier(app.NewLogNotifier(logger)),
		app.WithNotifier(app.NotifierFunc(func(event domain.Feedback, _ domain.Snapshot) {
			send <- outboundMessage[any]{Type: "feedback", Payload: feedbackPayload{Kind: event, Message: event.Message()}}
		})),
	)
	if err != nil {
		logger.Info("quiz start failed", "error", err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancel := ctrl.Subscribe()
	defer cancel()

	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("ws write error", "error", err)
				// keep draining so the read loop never blocks on send
				continue
			}
		}
	}()

	// the subscription's first snapshot is the joined state
	send <- outboundMessage[any]{Type: "joined", Payload: <-updates}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	logger.Info("quiz connection opened")
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(ctrl, inbound); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	}
	logger.Info("quiz connection closed", "complete", ctrl.Snapshot().Complete)

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

var errUnsupported = errors.New("unsupported message type")

func (h *WSHandler) dispatch(ctrl *app.Controller, inbound inboundMessage) error {
	switch inbound.Type {
	case "draft":
		payload, err := decodeText(inbound.Payload)
		if err != nil || payload.Text == nil {
			return errors.New("invalid draft payload")
		}
		return ctrl.UpdateDraft(*payload.Text)
	case "submit":
		payload, err := decodeText(inbound.Payload)
		if err != nil {
			return errors.New("invalid submit payload")
		}
		if payload.Text != nil {
			if err := ctrl.UpdateDraft(*payload.Text); err != nil {
				return err
			}
		}
		_, err = ctrl.SubmitAnswer()
		return err
	case "restart":
		ctrl.Restart()
		return nil
	default:
		return errUnsupported
	}
}

func decodeText(raw json.RawMessage) (textPayload, error) {
	var payload textPayload
	if len(raw) == 0 || string(raw) == "null" {
		return payload, nil
	}
	err := json.Unmarshal(raw, &payload)
	return payload, err
}
