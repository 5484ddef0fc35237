// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/erc20bank/thor"
)

// CustomGenesis is user customized genesis, usually loaded from a yaml file.
type CustomGenesis struct {
	Name       string           `yaml:"name" json:"name"`
	LaunchTime uint64           `yaml:"launchTime" json:"launchTime"`
	Owner      thor.Address     `yaml:"owner" json:"owner"`
	Nonce      uint64           `yaml:"nonce" json:"nonce"`
	RewardPool *HexOrDecimal256 `yaml:"rewardPool" json:"rewardPool"`
	Period     uint64           `yaml:"period" json:"period"`
	Accounts   []Account        `yaml:"accounts" json:"accounts"`
}

// Account is an initial token allocation.
type Account struct {
	Address thor.Address     `yaml:"address" json:"address"`
	Balance *HexOrDecimal256 `yaml:"balance" json:"balance"`
}

// ParseCustomGenesis decodes a yaml (or json, which is yaml) genesis.
func ParseCustomGenesis(data []byte) (*CustomGenesis, error) {
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Owner.IsZero() {
		return nil, errors.New("owner required")
	}
	if gen.Period == 0 {
		return nil, errors.New("period must not be 0")
	}
	pool := new(big.Int)
	if gen.RewardPool != nil {
		pool = (*big.Int)(gen.RewardPool)
	}
	if pool.Sign() < 0 {
		return nil, errors.New("reward pool must not be negative")
	}

	var (
		allocs   []Allocation
		ownerBal = new(big.Int)
	)
	for _, a := range gen.Accounts {
		if a.Balance == nil {
			continue
		}
		bal := (*big.Int)(a.Balance)
		if bal.Sign() < 0 {
			return nil, fmt.Errorf("negative balance of %v", a.Address)
		}
		if a.Address == gen.Owner {
			ownerBal.Add(ownerBal, bal)
		}
		allocs = append(allocs, Allocation{a.Address, new(big.Int).Set(bal)})
	}
	if ownerBal.Cmp(pool) < 0 {
		return nil, errors.New("owner balance less than reward pool")
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return newGenesis(name, gen.LaunchTime, gen.Owner, gen.Nonce, new(big.Int).Set(pool), gen.Period, allocs), nil
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

func (i *HexOrDecimal256) set(s string) error {
	bigint, ok := math.ParseBig256(s)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", s)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected integer", value.Line)
	}
	return i.set(value.Value)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	return i.set(hex)
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	d := math.HexOrDecimal256(i)
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
