package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection. Its identity is random per
// connection, so reconnecting yields a fresh identity.
type Client struct {
	conn     *websocket.Conn
	send     chan any
	done     chan struct{}
	closer   sync.Once
	identity string
}

func newClient(conn *websocket.Conn, identity string) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan any, 8),
		done:     make(chan struct{}),
		identity: identity,
	}
}

// enqueue hands a message to the write pump without blocking. Messages
// to a slow or closed client are dropped; delivery is fire-and-forget.
func (c *Client) enqueue(msg any) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
	}
}

func (c *Client) close() {
	c.closer.Do(func() {
		close(c.done)
	})
}

func newIdentity() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}

	return hex.EncodeToString(buf)
}

// serveWS upgrades a connection and services its events until it drops.
func serveWS(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		identity := newIdentity()
		if identity == "" {
			http.Error(w, "unable to assign client id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := newClient(conn, identity)
		logf(cfg, "GAMES: Client %s connected from %s", identity, realIP(r))

		go client.writePump()
		client.readPump(cfg, gm)
	}
}

func (c *Client) readPump(cfg *Config, gm *GameManager) {
	defer func() {
		gm.handleDisconnect(c)
		c.close()
		_ = c.conn.Close()
		logf(cfg, "GAMES: Client %s disconnected", c.identity)
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "create_game":
			gm.createGame(c)
		case "join_game":
			gm.joinGame(c, msg.Pin, msg.Nickname)
		case "start_game":
			gm.startGame(c, msg.Pin)
		case "next_question":
			gm.nextQuestion(c, msg.Pin)
		case "submit_answer":
			gm.submitAnswer(c, msg.Pin, msg.QuestionIndex, msg.AnswerIndex)
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
