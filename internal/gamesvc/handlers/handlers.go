package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avvvet/ternarii-services/internal/gamesvc/apperr"
	"github.com/avvvet/ternarii-services/internal/gamesvc/service"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth     *jwtauth.JWTAuth
	playerService *service.PlayerService
	gameService   *service.GameService
	moveService   *service.MoveService
	opsService    *service.OpsService
	instanceId    string
}

func NewHandler(playerService *service.PlayerService, gameService *service.GameService,
	moveService *service.MoveService, opsService *service.OpsService, instanceId string) *Handler {
	return &Handler{
		playerService: playerService,
		gameService:   gameService,
		moveService:   moveService,
		opsService:    opsService,
		instanceId:    instanceId,
	}
}

// Envelope is the body of every response: exactly one of Success or Failure
// is set. The HTTP status is always 200.
type Envelope struct {
	Success interface{} `json:"success,omitempty"`
	Failure *Failure    `json:"failure,omitempty"`
}

type Failure struct {
	Message string `json:"message"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, payload interface{}) {
	if payload == nil {
		payload = struct{}{}
	}
	h.writeEnvelope(w, Envelope{Success: payload})
}

// CreateFailure turns err into a failure envelope. Errors without a kind are
// logged with a reference id and never shown verbatim.
func (h *Handler) CreateFailure(w http.ResponseWriter, r *http.Request, err error) {
	message := apperr.MessageOf(err)
	if message == "" {
		ref := uuid.New().String()
		log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"ref":        ref,
			"path":       r.URL.Path,
		}).Errorf("request failed: %s", err)
		message = "internal error (ref " + ref + ")"
	} else {
		log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"kind":       apperr.KindOf(err).String(),
		}).Debugf("request rejected: %s", message)
	}
	h.writeEnvelope(w, Envelope{Failure: &Failure{Message: message}})
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// params reads required request parameters from the query string or a form
// body, keeping the first problem it meets.
type params struct {
	r   *http.Request
	err error
}

func newParams(r *http.Request) *params {
	p := &params{r: r}
	if err := r.ParseForm(); err != nil {
		p.err = apperr.Wrap(apperr.Validation, "malformed request parameters", err)
	}
	return p
}

func (p *params) str(name string) string {
	if p.err != nil {
		return ""
	}
	values, ok := p.r.Form[name]
	if !ok || len(values) == 0 {
		p.err = apperr.New(apperr.Validation, "missing parameter: "+name)
		return ""
	}
	return values[0]
}

func (p *params) int64(name string) int64 {
	raw := p.str(name)
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.err = apperr.Wrap(apperr.Validation, "invalid parameter: "+name, err)
		return 0
	}
	return v
}

func (p *params) int(name string) int {
	raw := p.str(name)
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = apperr.Wrap(apperr.Validation, "invalid parameter: "+name, err)
		return 0
	}
	return v
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, map[string]string{
		"service":  "game",
		"instance": h.instanceId,
	})
}
