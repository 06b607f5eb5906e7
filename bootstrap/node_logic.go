// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-counter-go/services/processor/native"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/repository"
	"github.com/orbs-network/orbs-counter-go/services/statestorage"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter-go/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type NodeLogic interface {
	govnr.ShutdownWaiter
	VirtualMachine() services.VirtualMachine
	StateStorage() statestorage.Service
}

type nodeLogic struct {
	govnr.TreeSupervisor
	virtualMachine services.VirtualMachine
	stateStorage   statestorage.Service
}

func NewNodeLogic(
	ctx context.Context,
	statePersistence adapter.StatePersistence,
	logger log.Logger,
	metricRegistry metric.Registry,
	nodeConfig config.NodeConfig,
) (NodeLogic, error) {

	stateStorageService, err := statestorage.NewStateStorage(statePersistence, logger, metricRegistry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create state storage")
	}

	processor := native.NewNativeProcessor(native.NewPrebuiltRepository(repository.Contracts), logger, metricRegistry)
	virtualMachineService := virtualmachine.NewVirtualMachine(stateStorageService, processor, nodeConfig, logger, metricRegistry)

	n := &nodeLogic{
		virtualMachine: virtualMachineService,
		stateStorage:   stateStorageService,
	}

	if interval := nodeConfig.MetricsReportInterval(); interval > 0 {
		n.Supervise(metricRegistry.ReportEvery(ctx, interval, logger))
	}

	if interval := nodeConfig.SystemMetricsInterval(); interval > 0 {
		n.Supervise(metric.NewSystemReporter(ctx, interval, metricRegistry, logger))
	}

	return n, nil
}

func (n *nodeLogic) VirtualMachine() services.VirtualMachine {
	return n.virtualMachine
}

func (n *nodeLogic) StateStorage() statestorage.Service {
	return n.stateStorage
}
