package crazyserver

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type socket struct {
	socketType string
	name       string
	out        chan<- interface{}
}

type socketIndexResp struct {
	Sockets []string `json:"sockets"`
}

func socketsInitRoute(r *mux.Router, s *Server) {
	r.HandleFunc("/sockets", s.socketsIndexHandle).Methods("GET")
	r.HandleFunc("/sockets/websocket", s.websocketIndexHandle).Methods("GET")
}

func (s *Server) socketNames() []string {
	s.socketsLock.Lock()
	names := make([]string, 0, len(s.sockets))
	for name, sk := range s.sockets {
		names = append(names, sk.socketType+"/"+name)
	}
	s.socketsLock.Unlock()

	sort.Strings(names)
	return names
}

func (s *Server) socketsIndexHandle(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, socketIndexResp{s.socketNames()})
}

func (s *Server) socketRemove(name string) {
	s.socketsLock.Lock()
	delete(s.sockets, name)
	s.socketsLock.Unlock()
}

/* Websocket implementation */
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// websocketIndexHandle upgrades to a decode stream: every text message is a
// hex frame and is answered with its decoded message or an error. Without
// an upgrade it lists the open websockets.
func (s *Server) websocketIndexHandle(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		respondJSON(w, http.StatusOK, socketIndexResp{s.socketNames()})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.socketsLock.Lock()
	name := fmt.Sprintf("websocket%d", s.wsID)
	s.wsID++
	out := make(chan interface{}, 5)
	s.sockets[name] = socket{socketType: "websocket", name: name, out: out}
	s.socketsLock.Unlock()

	s.logger.Debug().Str("socket", name).Msg("websocket connected")

	// Out routine, the only writer on conn
	go func() {
		defer conn.Close()
		for message := range out {
			if err := conn.WriteJSON(message); err != nil {
				s.logger.Debug().Str("socket", name).Err(err).Msg("websocket out error, disconnecting")
				s.socketRemove(name)
				conn.Close() // unblocks the in routine, which closes out
				for range out {
				}
				return
			}
		}
	}()

	// In routine
	go func() {
		defer close(out)
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				s.logger.Debug().Str("socket", name).Err(err).Msg("websocket in error, disconnecting")
				s.socketRemove(name)
				return
			}
			if messageType != websocket.TextMessage {
				out <- errorResponse{Error: "expected a hex encoded text frame"}
				continue
			}

			m, err := s.decodeHex(string(data))
			if err != nil {
				out <- errorResponse{Error: err.Error()}
				continue
			}
			out <- m
		}
	}()
}
