// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"encoding/binary"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"sync"
)

type executionContext struct {
	contextId      primitives.ExecutionContextId
	accessScope    protocol.ExecutionAccessScope
	serviceStack   []primitives.ContractName
	transientState *transientState
	events         []*services.DiagnosticEvent
}

func (c *executionContext) serviceStackTop() primitives.ContractName {
	if len(c.serviceStack) == 0 {
		return ""
	}
	return c.serviceStack[len(c.serviceStack)-1]
}

func (c *executionContext) serviceStackPush(contractName primitives.ContractName) {
	c.serviceStack = append(c.serviceStack, contractName)
}

func (c *executionContext) serviceStackPop() {
	if len(c.serviceStack) == 0 {
		return
	}
	c.serviceStack = c.serviceStack[0 : len(c.serviceStack)-1]
}

func (c *executionContext) appendEvent(data string) {
	c.events = append(c.events, &services.DiagnosticEvent{
		ContractName: c.serviceStackTop(),
		Topics:       []string{"log"},
		Data:         data,
	})
}

type executionContextProvider struct {
	mutex          sync.RWMutex
	lastContextId  uint64
	activeContexts map[string]*executionContext
}

func newExecutionContextProvider() *executionContextProvider {
	return &executionContextProvider{
		activeContexts: make(map[string]*executionContext),
	}
}

func (cp *executionContextProvider) allocateExecutionContext(accessScope protocol.ExecutionAccessScope) (primitives.ExecutionContextId, *executionContext) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	cp.lastContextId++
	contextId := make(primitives.ExecutionContextId, 8)
	binary.BigEndian.PutUint64(contextId, cp.lastContextId)

	newContext := &executionContext{
		contextId:      contextId,
		accessScope:    accessScope,
		transientState: newTransientState(),
	}
	cp.activeContexts[contextId.KeyForMap()] = newContext
	return newContext.contextId, newContext
}

func (cp *executionContextProvider) destroyExecutionContext(contextId primitives.ExecutionContextId) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	delete(cp.activeContexts, contextId.KeyForMap())
}

func (cp *executionContextProvider) loadExecutionContext(contextId primitives.ExecutionContextId) *executionContext {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return cp.activeContexts[contextId.KeyForMap()]
}

func (cp *executionContextProvider) count() int {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return len(cp.activeContexts)
}

func (c *executionContext) diagnosticEvents(inSuccessfulContractCall bool) []*services.DiagnosticEvent {
	res := make([]*services.DiagnosticEvent, 0, len(c.events))
	for _, event := range c.events {
		event.InSuccessfulContractCall = inSuccessfulContractCall
		res = append(res, event)
	}
	return res
}
