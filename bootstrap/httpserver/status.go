// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type StatusResponse struct {
	Uptime      int64
	BlockHeight uint64
	Timestamp   string
	Version     config.Version
}

func (s *HttpServer) getStatus(w http.ResponseWriter, r *http.Request) {
	status := &StatusResponse{
		Uptime:    int64(time.Since(s.startTime).Seconds()),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Version:   config.GetVersion(),
	}

	if output, err := s.stateStorage.GetBlockHeight(r.Context(), &services.GetBlockHeightInput{}); err != nil {
		s.logger.Error("could not retrieve block height for status", log.Error(err))
	} else {
		status.BlockHeight = uint64(output.BlockHeight)
	}

	s.writeJson(w, http.StatusOK, status)
}
