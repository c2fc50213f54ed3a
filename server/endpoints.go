package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dekarrin/lambdaq/internal/debruijn"
	"github.com/dekarrin/lambdaq/internal/printer"
	"github.com/dekarrin/lambdaq/internal/reduce"
	"github.com/dekarrin/lambdaq/internal/syntax"
	"github.com/dekarrin/lambdaq/internal/term"
	"github.com/dekarrin/lambdaq/server/dao"
)

// EndpointFunc is the signature every lambdaqd route handler implements. It
// returns an EndpointResult instead of writing to the ResponseWriter
// directly so middleware and tests can inspect the outcome before it is
// serialized.
type EndpointFunc func(req *http.Request) EndpointResult

// Endpoint adapts an EndpointFunc into an http.HandlerFunc, writing out
// whatever result the function returns.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		result := ep(req)
		result.writeResponse(w, req)
	}
}

type parseRequest struct {
	Source string `json:"source"`
}

type parseResponse struct {
	Named string `json:"named"`
}

type reduceRequest struct {
	Source   string `json:"source"`
	Strategy string `json:"strategy"`
}

type reduceResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"`
	Steps  int    `json:"steps"`
}

type traceResponse struct {
	ID    string   `json:"id"`
	Steps []string `json:"steps"`
}

type sessionResponse struct {
	ID       string   `json:"id"`
	Source   string   `json:"source"`
	Mode     string   `json:"mode"`
	Strategy string   `json:"strategy"`
	Result   string   `json:"result"`
	Steps    []string `json:"steps"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// API holds shared dependencies for all lambdaqd handlers.
type API struct {
	DB          dao.Store
	Secret      []byte
	UnauthDelay time.Duration
}

func (api API) HTTPParse() http.HandlerFunc  { return Endpoint(api.epParse) }
func (api API) HTTPReduce() http.HandlerFunc { return Endpoint(api.epReduce) }
func (api API) HTTPTrace() http.HandlerFunc  { return Endpoint(api.epTrace) }
func (api API) HTTPGetSession() http.HandlerFunc {
	return Endpoint(api.epGetSession)
}
func (api API) HTTPLogin() http.HandlerFunc { return Endpoint(api.epLogin) }

func (api API) epParse(req *http.Request) EndpointResult {
	var body parseRequest
	if err := decodeJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), "decode request body: %s", err)
	}

	tm, err := syntax.ParseComplete(body.Source)
	if err != nil {
		se := syntax.NewSyntaxError(body.Source, err)
		return jsonBadRequest(se.FullMessage(), "parse %q: %s", body.Source, err)
	}

	debruijn.Resolve(&tm)

	return jsonOK(parseResponse{Named: printer.Format(tm, printer.Named)}, "parsed %q", body.Source)
}

func (api API) epReduce(req *http.Request) EndpointResult {
	body, strat, result := api.parseAndReduceBody(req)
	if result != nil {
		return *result
	}

	steps := reduce.Trace(&body.term, strat, func(t term.Term) string {
		return printer.Format(t, printer.Named)
	})

	final := printer.Format(body.term, printer.Named)
	if len(steps) > 0 {
		final = steps[len(steps)-1]
	}

	sesh, err := api.storeSession(req, body.source, strat, steps, final)
	if err != nil {
		return jsonInternalServerError("store session: %s", err)
	}

	return jsonOK(reduceResponse{ID: sesh.ID.String(), Result: final, Steps: len(steps)}, "reduced %q", body.source)
}

func (api API) epTrace(req *http.Request) EndpointResult {
	body, strat, result := api.parseAndReduceBody(req)
	if result != nil {
		return *result
	}

	steps := reduce.Trace(&body.term, strat, func(t term.Term) string {
		return printer.Format(t, printer.Named)
	})

	final := printer.Format(body.term, printer.Named)
	if len(steps) > 0 {
		final = steps[len(steps)-1]
	}

	sesh, err := api.storeSession(req, body.source, strat, steps, final)
	if err != nil {
		return jsonInternalServerError("store session: %s", err)
	}

	return jsonOK(traceResponse{ID: sesh.ID.String(), Steps: steps}, "traced %q", body.source)
}

func (api API) storeSession(req *http.Request, source string, strat reduce.Strategy, steps []string, final string) (dao.Session, error) {
	stratName := "byvalue"
	if strat == reduce.Normalize {
		stratName = "normalize"
	}
	return api.DB.Sessions().Create(req.Context(), dao.Session{
		Source:   source,
		Mode:     "named",
		Strategy: stratName,
		Result:   final,
		Steps:    steps,
	})
}

type parsedReduceBody struct {
	source string
	term   term.Term
}

// parseAndReduceBody decodes a reduceRequest, parses and resolves its
// source, and validates its strategy, returning a non-nil EndpointResult
// only on failure.
func (api API) parseAndReduceBody(req *http.Request) (parsedReduceBody, reduce.Strategy, *EndpointResult) {
	var body reduceRequest
	if err := decodeJSON(req, &body); err != nil {
		r := jsonBadRequest(err.Error(), "decode request body: %s", err)
		return parsedReduceBody{}, 0, &r
	}

	var strat reduce.Strategy
	switch body.Strategy {
	case "", "byvalue":
		strat = reduce.ByValue
	case "normalize":
		strat = reduce.Normalize
	default:
		r := jsonBadRequest(fmt.Sprintf("strategy must be byvalue or normalize, got %q", body.Strategy), "invalid strategy %q", body.Strategy)
		return parsedReduceBody{}, 0, &r
	}

	tm, err := syntax.ParseComplete(body.Source)
	if err != nil {
		se := syntax.NewSyntaxError(body.Source, err)
		r := jsonBadRequest(se.FullMessage(), "parse %q: %s", body.Source, err)
		return parsedReduceBody{}, 0, &r
	}
	debruijn.Resolve(&tm)

	return parsedReduceBody{source: body.Source, term: tm}, strat, nil
}

func (api API) epGetSession(req *http.Request) EndpointResult {
	idStr := chi.URLParam(req, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return jsonBadRequest("id must be a valid UUID", "parse session id %q: %s", idStr, err)
	}

	s, err := api.DB.Sessions().GetByID(req.Context(), id)
	if err != nil {
		if err == dao.ErrNotFound {
			return jsonNotFound("", "session %s not found", id)
		}
		return jsonInternalServerError("get session %s: %s", id, err)
	}

	return jsonOK(sessionResponse{
		ID:       s.ID.String(),
		Source:   s.Source,
		Mode:     s.Mode,
		Strategy: s.Strategy,
		Result:   s.Result,
		Steps:    s.Steps,
	}, "retrieved session %s", id)
}

func (api API) epLogin(req *http.Request) EndpointResult {
	tok, err := getBearerToken(req.Header.Get("Authorization"))
	if err != nil {
		return jsonUnauthorized("", err.Error())
	}

	id, secret, err := splitAPIKeyToken(tok)
	if err != nil {
		return jsonUnauthorized("", err.Error())
	}

	key, err := api.DB.APIKeys().GetByID(req.Context(), id)
	if err != nil {
		time.Sleep(api.UnauthDelay)
		return jsonUnauthorized("", "api key %s not found", id)
	}

	if err := bcrypt.CompareHashAndPassword(key.HashedSecret, []byte(secret)); err != nil {
		time.Sleep(api.UnauthDelay)
		return jsonUnauthorized("", "api key %s: secret mismatch", id)
	}

	jwtTok, err := generateJWT(api.Secret, key)
	if err != nil {
		return jsonInternalServerError("generate JWT for %s: %s", id, err)
	}

	return jsonCreated(loginResponse{Token: jwtTok}, "issued token for api key %s", id)
}

func decodeJSON(req *http.Request, v interface{}) error {
	defer req.Body.Close()
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}

func splitAPIKeyToken(tok string) (uuid.UUID, string, error) {
	for i := 0; i < len(tok); i++ {
		if tok[i] == '.' {
			id, err := uuid.Parse(tok[:i])
			if err != nil {
				return uuid.UUID{}, "", fmt.Errorf("malformed API key")
			}
			return id, tok[i+1:], nil
		}
	}
	return uuid.UUID{}, "", fmt.Errorf("malformed API key")
}
