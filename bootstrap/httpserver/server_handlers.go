// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"bytes"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/orbs-counter-go/jsonapi"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"io"
	"net/http"
	"time"
)

const MAX_REQUEST_BODY_BYTES = 1 << 20

func readMethodRequest(w http.ResponseWriter, r *http.Request) (*jsonapi.MethodRequest, *httpErr) {
	if r.Body == nil {
		return nil, &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MAX_REQUEST_BODY_BYTES))
	if err != nil {
		return nil, &httpErr{http.StatusRequestEntityTooLarge, log.Error(err), "http request body is too large or could not be read"}
	}
	if len(body) == 0 {
		return nil, &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}

	request := &jsonapi.MethodRequest{}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.DecodeContext(r.Context(), request); err != nil {
		return nil, &httpErr{http.StatusBadRequest, log.Error(err), "http request is not a valid method request"}
	}
	if request.ContractName == "" || request.MethodName == "" {
		return nil, &httpErr{http.StatusBadRequest, nil, "method request requires ContractName and MethodName"}
	}
	return request, nil
}

func translateCallResultToHttpCode(result protocol.ExecutionResult) int {
	switch result {
	case protocol.EXECUTION_RESULT_SUCCESS:
		return http.StatusOK
	case protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT:
		return http.StatusOK
	case protocol.EXECUTION_RESULT_ERROR_INPUT:
		return http.StatusBadRequest
	case protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED:
		return http.StatusBadRequest
	case protocol.EXECUTION_RESULT_ERROR_UNEXPECTED:
		return http.StatusInternalServerError
	}
	return http.StatusNotImplemented
}

func (s *HttpServer) sendHandler(w http.ResponseWriter, r *http.Request) {
	s.runMethod(w, r, protocol.ACCESS_SCOPE_READ_WRITE)
}

func (s *HttpServer) callHandler(w http.ResponseWriter, r *http.Request) {
	s.runMethod(w, r, protocol.ACCESS_SCOPE_READ_ONLY)
}

func (s *HttpServer) runMethod(w http.ResponseWriter, r *http.Request, accessScope protocol.ExecutionAccessScope) {
	request, e := readMethodRequest(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	args, err := jsonapi.ConvertArguments(request.Arguments)
	if err != nil {
		s.writeJson(w, http.StatusBadRequest, &jsonapi.MethodResponse{
			CallResult:       jsonapi.CallResultName(protocol.EXECUTION_RESULT_ERROR_INPUT),
			OutputArguments:  []jsonapi.MethodArgument{},
			DiagnosticEvents: []jsonapi.DiagnosticEvent{},
			Error:            err.Error(),
		})
		return
	}

	s.logger.Info("http server received method request", log.String("contract", request.ContractName), log.String("method", request.MethodName), log.Stringable("access-scope", accessScope), trace.LogFieldFrom(r.Context()))

	start := time.Now()
	output, err := s.vm.RunMethod(r.Context(), &services.RunMethodInput{
		ContractName:       primitives.ContractName(request.ContractName),
		MethodName:         primitives.MethodName(request.MethodName),
		InputArgumentArray: args,
		AccessScope:        accessScope,
	})
	s.metrics.runMethodTime.RecordSince(start)

	if output == nil {
		if err == nil {
			s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, nil, "virtual machine returned no output"})
		} else {
			s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), err.Error()})
		}
		return
	}

	response := jsonapi.ConvertRunMethodOutput(output)
	if err != nil {
		response.Error = err.Error()
	}
	s.writeJson(w, translateCallResultToHttpCode(output.CallResult), response)
}

func (s *HttpServer) readStateHandler(w http.ResponseWriter, r *http.Request) {
	contractName := chi.URLParam(r, "contract")
	key := chi.URLParam(r, "key")

	output, err := s.stateStorage.ReadKeys(r.Context(), &services.ReadKeysInput{
		ContractName: primitives.ContractName(contractName),
		Keys:         []hash.Ripemd160Sha256{hash.CalcRipemd160Sha256([]byte(key))},
	})
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "failed to read state"})
		return
	}

	response := &jsonapi.StateResponse{
		ContractName: contractName,
		Key:          key,
		BlockHeight:  uint64(output.BlockHeight),
	}

	if len(output.StateRecords) > 0 {
		value, err := types.DecodeValue(output.StateRecords[0].Value())
		if err != nil {
			s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "stored value could not be decoded"})
			return
		}
		if value != nil {
			arg := jsonapi.ConvertArgument(value)
			response.Value = &arg
		}
	}

	s.writeJson(w, http.StatusOK, response)
}

func (s *HttpServer) writeJson(w http.ResponseWriter, code int, body interface{}) {
	bytes, err := json.Marshal(body)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "failed to encode response"})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(bytes); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *HttpServer) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

func (s *HttpServer) filterOn(w http.ResponseWriter, r *http.Request) {
	for _, f := range s.logger.Filters() {
		if c, ok := f.(log.ConditionalFilter); ok {
			c.On()
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("filter on"))
}

func (s *HttpServer) filterOff(w http.ResponseWriter, r *http.Request) {
	for _, f := range s.logger.Filters() {
		if c, ok := f.(log.ConditionalFilter); ok {
			c.Off()
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("filter off"))
}

func (s *HttpServer) dumpMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJson(w, http.StatusOK, s.metricRegistry.ExportAll())
}

func (s *HttpServer) dumpPrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, err := w.Write([]byte(s.metricRegistry.ExportPrometheus()))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *HttpServer) dumpState(w http.ResponseWriter, r *http.Request) {
	dumper, ok := s.stateStorage.(adapter.Dumper)
	if !ok {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusNotImplemented, nil, "state storage does not support dumping"})
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte(dumper.Dump()))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}
