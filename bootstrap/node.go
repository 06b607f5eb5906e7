// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"fmt"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counter-go/bootstrap/httpserver"
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/scribe/log"
)

type Node struct {
	govnr.TreeSupervisor
	logic       NodeLogic
	httpServer  *httpserver.HttpServer
	persistence adapter.StatePersistence
	logger      log.Logger
	ctxCancel   context.CancelFunc
}

// NewNode panics when a component cannot start, the caller is expected to log and exit
func NewNode(nodeConfig config.NodeConfig, logger log.Logger) *Node {
	ctx, ctxCancel := context.WithCancel(context.Background())

	nodeLogger := logger.WithTags(log.String("node", nodeConfig.NodeName()))
	metricRegistry := metric.NewRegistry().WithNodeName(nodeConfig.NodeName())

	statePersistence, err := NewStatePersistence(ctx, nodeConfig, nodeLogger, metricRegistry)
	if err != nil {
		ctxCancel()
		panic(fmt.Sprintf("failed to open state persistence: %s", err.Error()))
	}

	nodeLogic, err := NewNodeLogic(ctx, statePersistence, nodeLogger, metricRegistry, nodeConfig)
	if err != nil {
		ctxCancel()
		_ = statePersistence.Close()
		panic(fmt.Sprintf("failed to create node logic: %s", err.Error()))
	}

	httpServer := httpserver.NewHttpServer(nodeConfig, nodeLogger, nodeLogic.VirtualMachine(), nodeLogic.StateStorage(), metricRegistry)

	n := &Node{
		logic:       nodeLogic,
		httpServer:  httpServer,
		persistence: statePersistence,
		logger:      nodeLogger,
		ctxCancel:   ctxCancel,
	}

	n.Supervise(nodeLogic)
	n.Supervise(httpServer)

	nodeLogger.Info("node started", log.String("persistence", nodeConfig.StateStoragePersistence()), log.Int("http-port", httpServer.Port()))

	return n
}

func (n *Node) Port() int {
	return n.httpServer.Port()
}

// GracefulShutdown drains in-flight requests before closing the state persistence
func (n *Node) GracefulShutdown(shutdownContext context.Context) {
	n.ctxCancel()
	n.httpServer.GracefulShutdown(shutdownContext)
	if err := n.persistence.Close(); err != nil {
		n.logger.Error("failed to close state persistence", log.Error(err))
	}
}
