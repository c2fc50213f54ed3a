package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// EndpointResult is the result of an endpoint function. It knows how to
// write itself out as an HTTP response and how to log itself, so handlers
// never touch http.ResponseWriter directly except through it.
type EndpointResult struct {
	status      int
	isErr       bool
	internalMsg string
	resp        interface{}
	hdrs        [][2]string
}

func jsonResponse(status int, respObj interface{}, internalMsgFmt string, v ...interface{}) EndpointResult {
	return EndpointResult{
		status:      status,
		resp:        respObj,
		internalMsg: sprintfOrSelf(internalMsgFmt, v...),
	}
}

func jsonErr(status int, userMsg string, internalMsgFmt string, v ...interface{}) EndpointResult {
	return EndpointResult{
		status:      status,
		isErr:       true,
		resp:        map[string]string{"error": userMsg},
		internalMsg: sprintfOrSelf(internalMsgFmt, v...),
	}
}

func sprintfOrSelf(format string, v ...interface{}) string {
	if len(v) == 0 {
		return format
	}
	return fmt.Sprintf(format, v...)
}

func jsonOK(respObj interface{}, internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonResponse(http.StatusOK, respObj, internalMsgFmt, v...)
}

func jsonCreated(respObj interface{}, internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonResponse(http.StatusCreated, respObj, internalMsgFmt, v...)
}

func jsonNoContent(internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonResponse(http.StatusNoContent, nil, internalMsgFmt, v...)
}

func jsonBadRequest(userMsg string, internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonErr(http.StatusBadRequest, userMsg, internalMsgFmt, v...)
}

func jsonNotFound(userMsg string, internalMsgFmt string, v ...interface{}) EndpointResult {
	if userMsg == "" {
		userMsg = "The requested resource was not found"
	}
	return jsonErr(http.StatusNotFound, userMsg, internalMsgFmt, v...)
}

func jsonUnauthorized(userMsg string, internalMsgFmt string, v ...interface{}) EndpointResult {
	if userMsg == "" {
		userMsg = "Valid credentials are required for this endpoint"
	}
	return jsonErr(http.StatusUnauthorized, userMsg, internalMsgFmt, v...)
}

func jsonForbidden(internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonErr(http.StatusForbidden, "You don't have permission to do that", internalMsgFmt, v...)
}

func jsonMethodNotAllowed(req *http.Request, internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonErr(http.StatusMethodNotAllowed, "Method not allowed on this resource", internalMsgFmt, v...)
}

func jsonConflict(userMsg string, internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonErr(http.StatusConflict, userMsg, internalMsgFmt, v...)
}

func jsonInternalServerError(internalMsgFmt string, v ...interface{}) EndpointResult {
	return jsonErr(http.StatusInternalServerError, "An internal server error occurred", internalMsgFmt, v...)
}

func (r EndpointResult) withHeader(name, val string) EndpointResult {
	hdrs := make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(hdrs, r.hdrs)
	hdrs = append(hdrs, [2]string{name, val})
	r.hdrs = hdrs
	return r
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	body, err := json.Marshal(r.resp)
	if err != nil {
		log.Printf("ERROR: could not marshal response body: %s", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}
	w.Header().Set("Content-Type", "application/json")

	logHTTPResponse(req, r)

	w.WriteHeader(r.status)
	if r.status != http.StatusNoContent {
		w.Write(body)
	}
}

func logHTTPResponse(req *http.Request, r EndpointResult) {
	level := "INFO"
	if r.isErr {
		level = "ERROR"
	}
	msg := r.internalMsg
	if msg == "" {
		msg = http.StatusText(r.status)
	}
	log.Printf("%s: HTTP-%d %s %s: %s", level, r.status, req.Method, req.URL.Path, msg)
}
