// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-gifportal
//
// go-gifportal is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-gifportal is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-gifportal.  If not, see <https://www.gnu.org/licenses/>.

package apply

import (
	"fmt"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
	"github.com/algorand/go-gifportal/logging"
)

// Balances allow to move value between accounts and to read and write
// account records.
type Balances interface {
	// Get looks up the account record of addr. Unallocated accounts come
	// back as the zero AccountData.
	Get(addr basics.Address) (basics.AccountData, error)

	Put(addr basics.Address, ad basics.AccountData) error
}

// Processor is a program the ledger can execute.
type Processor interface {
	ProgramID() basics.Address
	Process(ic *InvokeContext, data []byte) error
}

// Registry maps program ids to their processors. The system program is
// always present.
type Registry struct {
	programs map[basics.Address]Processor
}

// MakeRegistry builds a registry holding the system program and procs.
func MakeRegistry(procs ...Processor) (*Registry, error) {
	r := &Registry{programs: make(map[basics.Address]Processor)}
	r.programs[SystemProgramID] = SystemProgram{}
	for _, p := range procs {
		if _, ok := r.programs[p.ProgramID()]; ok {
			return nil, fmt.Errorf("program %v registered twice", p.ProgramID())
		}
		r.programs[p.ProgramID()] = p
	}
	return r, nil
}

// Lookup finds the processor registered under id.
func (r *Registry) Lookup(id basics.Address) (Processor, bool) {
	p, ok := r.programs[id]
	return p, ok
}

// AccountHandle is a program's view of one account referenced by an
// instruction. Handles naming the same address share the same record.
type AccountHandle struct {
	Address  basics.Address
	Signer   bool
	Writable bool

	acct *basics.AccountData
}

// Balance returns the current balance.
func (h *AccountHandle) Balance() basics.Amount { return h.acct.Balance }

// Owner returns the program that owns the account.
func (h *AccountHandle) Owner() basics.Address { return h.acct.Owner }

// Data returns the live data region. Writes into it modify the account.
func (h *AccountHandle) Data() []byte { return h.acct.Data }

// IsAllocated reports whether the account holds anything at all.
func (h *AccountHandle) IsAllocated() bool { return !h.acct.IsZero() }

// SetBalance replaces the balance.
func (h *AccountHandle) SetBalance(a basics.Amount) { h.acct.Balance = a }

// SetOwner replaces the owner.
func (h *AccountHandle) SetOwner(owner basics.Address) { h.acct.Owner = owner }

// SetData replaces the whole data region.
func (h *AccountHandle) SetData(data []byte) { h.acct.Data = data }

// InvokeContext is handed to a Processor for one invocation.
type InvokeContext struct {
	ProgramID basics.Address
	Accounts  []*AccountHandle
	Proto     config.ConsensusParams
	Log       logging.Logger

	depth    int
	programs *Registry
	// pre holds the account records as of the last verification point of
	// this frame, keyed by address.
	pre map[basics.Address]basics.AccountData
}

// Depth is the invocation depth of this frame, 1 for a top-level instruction.
func (ic *InvokeContext) Depth() int { return ic.depth }

// Account returns the i-th account handle or ErrNotEnoughAccountKeys.
func (ic *InvokeContext) Account(i int) (*AccountHandle, error) {
	if i < 0 || i >= len(ic.Accounts) {
		return nil, ledgercore.ErrNotEnoughAccountKeys
	}
	return ic.Accounts[i], nil
}

// Invoke runs ix as a nested call. Every account ix names must already be
// available to the caller, with at least the privileges ix asks for.
func (ic *InvokeContext) Invoke(ix transactions.Instruction) error {
	handles := make([]*AccountHandle, len(ix.Accounts))
	for i, ref := range ix.Accounts {
		caller := ic.handle(ref.Address)
		if caller == nil {
			return fmt.Errorf("%w: %v", ledgercore.ErrMissingAccount, ref.Address)
		}
		if (ref.Signer && !caller.Signer) || (ref.Writable && !caller.Writable) {
			return fmt.Errorf("%w: %v", ledgercore.ErrPrivilegeEscalation, ref.Address)
		}
		handles[i] = &AccountHandle{Address: ref.Address, Signer: ref.Signer, Writable: ref.Writable, acct: caller.acct}
	}

	// changes the caller made so far are checked under the caller's rules,
	// the callee's under its own
	if err := ic.verify(); err != nil {
		return err
	}
	if err := invoke(ix.ProgramID, handles, ix.Data, ic.depth+1, ic.programs, ic.Proto, ic.Log); err != nil {
		return err
	}
	ic.snapshot()
	return nil
}

// handle finds the strongest caller handle for addr.
func (ic *InvokeContext) handle(addr basics.Address) *AccountHandle {
	var found *AccountHandle
	for _, h := range ic.Accounts {
		if h.Address != addr {
			continue
		}
		if found == nil {
			found = &AccountHandle{Address: addr, acct: h.acct}
		}
		found.Signer = found.Signer || h.Signer
		found.Writable = found.Writable || h.Writable
	}
	return found
}

func (ic *InvokeContext) snapshot() {
	ic.pre = make(map[basics.Address]basics.AccountData, len(ic.Accounts))
	for _, h := range ic.Accounts {
		ic.pre[h.Address] = h.acct.Clone()
	}
}

func (ic *InvokeContext) verify() error {
	return verifyChanges(ic.ProgramID, ic.Accounts, ic.pre)
}

func invoke(programID basics.Address, handles []*AccountHandle, data []byte, depth int, programs *Registry, proto config.ConsensusParams, log logging.Logger) error {
	if depth > proto.MaxInvokeDepth {
		return ledgercore.ErrInvokeDepth
	}
	proc, ok := programs.Lookup(programID)
	if !ok {
		return fmt.Errorf("%w: %v", ledgercore.ErrProgramNotFound, programID)
	}
	ic := &InvokeContext{
		ProgramID: programID,
		Accounts:  handles,
		Proto:     proto,
		Log:       log.With("program", programID.String()),
		depth:     depth,
		programs:  programs,
	}
	ic.snapshot()
	if err := proc.Process(ic, data); err != nil {
		return err
	}
	return ic.verify()
}

// Instruction executes one top-level instruction against balances. Signer
// flags are taken at face value: signatures are checked before evaluation.
// On error balances may hold a partial result and must be discarded.
func Instruction(ix transactions.Instruction, balances Balances, programs *Registry, proto config.ConsensusParams, log logging.Logger) error {
	working := make(map[basics.Address]*basics.AccountData)
	order := make([]basics.Address, 0, len(ix.Accounts))
	handles := make([]*AccountHandle, len(ix.Accounts))
	for i, ref := range ix.Accounts {
		acct, ok := working[ref.Address]
		if !ok {
			ad, err := balances.Get(ref.Address)
			if err != nil {
				return err
			}
			ad = ad.Clone()
			acct = &ad
			working[ref.Address] = acct
			order = append(order, ref.Address)
		}
		handles[i] = &AccountHandle{Address: ref.Address, Signer: ref.Signer, Writable: ref.Writable, acct: acct}
	}

	if err := invoke(ix.ProgramID, handles, ix.Data, 1, programs, proto, log); err != nil {
		return err
	}

	for _, addr := range order {
		if err := balances.Put(addr, *working[addr]); err != nil {
			return err
		}
	}
	return nil
}
