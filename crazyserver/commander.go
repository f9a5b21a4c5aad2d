package crazyserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
)

func commanderInitRoute(r *mux.Router, s *Server) {
	r.HandleFunc("/encode/commander", s.commanderEncode).Methods("POST")
	r.HandleFunc("/encode/takeoff", s.takeoffEncode).Methods("POST")
	r.HandleFunc("/encode/land", s.landEncode).Methods("POST")
	r.HandleFunc("/encode/stop", s.stopEncode).Methods("POST")
	r.HandleFunc("/encode/goto", s.goToEncode).Methods("POST")
	r.HandleFunc("/encode/position", s.positionEncode).Methods("POST")
	r.HandleFunc("/encode/generic/stop", s.genericStopEncode).Methods("POST")
}

type commanderRequest struct {
	Roll   float32 `json:"roll"`
	Pitch  float32 `json:"pitch"`
	Yaw    float32 `json:"yaw"`
	Thrust uint16  `json:"thrust"`
}

func (s *Server) commanderEncode(w http.ResponseWriter, r *http.Request) {
	var req commanderRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	s.respondFrame(w, "commander", crazyflie.NewCommander(req.Roll, req.Pitch, req.Yaw, req.Thrust).Bytes())
}

type heightRequest struct {
	Height    float32 `json:"height"`
	Duration  float32 `json:"duration"`
	GroupMask uint8   `json:"group_mask"`
}

func (s *Server) takeoffEncode(w http.ResponseWriter, r *http.Request) {
	req := heightRequest{Height: 0.2, Duration: 2.0}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	p := crazyflie.NewTakeoff(req.Height, req.Duration)
	p.GroupMask = req.GroupMask
	s.respondFrame(w, "takeoff", p.Bytes())
}

func (s *Server) landEncode(w http.ResponseWriter, r *http.Request) {
	req := heightRequest{Height: 0, Duration: 2.0}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	p := crazyflie.NewLand(req.Height, req.Duration)
	p.GroupMask = req.GroupMask
	s.respondFrame(w, "land", p.Bytes())
}

type stopRequest struct {
	GroupMask uint8 `json:"group_mask"`
}

func (s *Server) stopEncode(w http.ResponseWriter, r *http.Request) {
	var req stopRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	p := crazyflie.NewStop()
	p.GroupMask = req.GroupMask
	s.respondFrame(w, "stop", p.Bytes())
}

type goToRequest struct {
	Relative  bool    `json:"relative"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Z         float32 `json:"z"`
	Yaw       float32 `json:"yaw"`
	Duration  float32 `json:"duration"`
	GroupMask uint8   `json:"group_mask"`
}

func (s *Server) goToEncode(w http.ResponseWriter, r *http.Request) {
	var req goToRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	p := crazyflie.NewGoTo(req.Relative, req.X, req.Y, req.Z, req.Yaw, req.Duration)
	p.GroupMask = req.GroupMask
	s.respondFrame(w, "goto", p.Bytes())
}

type positionRequest struct {
	X   float32 `json:"x"`
	Y   float32 `json:"y"`
	Z   float32 `json:"z"`
	Yaw float32 `json:"yaw"`
}

func (s *Server) positionEncode(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	s.respondFrame(w, "position", crtp.Marshal(crazyflie.NewPositionSetpointRequest(req.X, req.Y, req.Z, req.Yaw)))
}

func (s *Server) genericStopEncode(w http.ResponseWriter, r *http.Request) {
	s.respondFrame(w, "generic_stop", crtp.Marshal(crazyflie.NewGenericStopRequest()))
}
