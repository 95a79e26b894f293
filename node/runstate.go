/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"sync"
	"time"
)

type RunningStater interface {
	SetStatus
	GetStatus
}

type SetStatus interface {
	SetCpuCores(num int)
	SetPID(pid int)
	AddInserted()
	AddSearched()
	AddProved()
	AddDeleted()
	AddFailed()
}

type GetStatus interface {
	GetCpuCores() int
	GetPID() int
	GetStartTime() string
	GetCounters() Counters
}

// Counters counts the requests served since the node was opened.
type Counters struct {
	Inserted uint64
	Searched uint64
	Proved   uint64
	Deleted  uint64
	Failed   uint64
}

type RunningState struct {
	lock      *sync.RWMutex
	cpuCores  int
	pid       int
	startTime string
	counters  Counters
}

var _ RunningStater = (*RunningState)(nil)

func NewRunningState() *RunningState {
	return &RunningState{
		lock:      new(sync.RWMutex),
		startTime: time.Now().Format(time.DateTime),
	}
}

func (s *RunningState) SetCpuCores(num int) {
	s.lock.Lock()
	s.cpuCores = num
	s.lock.Unlock()
}

func (s *RunningState) SetPID(pid int) {
	s.lock.Lock()
	s.pid = pid
	s.lock.Unlock()
}

func (s *RunningState) AddInserted() {
	s.lock.Lock()
	s.counters.Inserted++
	s.lock.Unlock()
}

func (s *RunningState) AddSearched() {
	s.lock.Lock()
	s.counters.Searched++
	s.lock.Unlock()
}

func (s *RunningState) AddProved() {
	s.lock.Lock()
	s.counters.Proved++
	s.lock.Unlock()
}

func (s *RunningState) AddDeleted() {
	s.lock.Lock()
	s.counters.Deleted++
	s.lock.Unlock()
}

func (s *RunningState) AddFailed() {
	s.lock.Lock()
	s.counters.Failed++
	s.lock.Unlock()
}

func (s *RunningState) GetCpuCores() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cpuCores
}

func (s *RunningState) GetPID() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.pid
}

func (s *RunningState) GetStartTime() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.startTime
}

func (s *RunningState) GetCounters() Counters {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.counters
}
