// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package precompile

import (
	"fmt"

	"github.com/Fantom-foundation/tokenservice/go/hts"
)

// Config contains the options controlling the authorization model and the
// business rules of the precompile.
type Config struct {
	// TopLevelSignatures enables simple keys to be satisfied by signatures
	// attached to the top-level transaction. If disabled, only contract
	// related key components can authorize operations.
	TopLevelSignatures bool
	// AllowFallbackToApprovals lets debits that are not authorized by the
	// owner's key proceed if the calling contract holds a sufficient
	// allowance.
	AllowFallbackToApprovals bool
	// LazyCreationEnabled enables the creation of hollow accounts for
	// unknown aliases receiving value.
	LazyCreationEnabled bool
	// ChargeFeesToHollowReceivers makes fractional fees deducted from the
	// credit of a hollow account created in the same operation succeed. If
	// disabled, such fees fail the operation since the hollow account can
	// not authorize the deduction.
	ChargeFeesToHollowReceivers bool

	// SystemAccountBoundary is the first entity number outside of the
	// reserved system account range. Mirror addresses below it may only
	// receive value if they denote an existing account.
	SystemAccountBoundary uint64
	// MaxTokensPerAccount limits the number of associations per account.
	// Zero disables the limit.
	MaxTokensPerAccount int
	// MaxNftMetadataBytes limits the metadata size of minted serials.
	MaxNftMetadataBytes int

	// Attributes of lazily created accounts.
	HollowAutoRenewSeconds    int64
	HollowMaxAutoAssociations int
	LazyCreatedMemo           string

	// Gas charged per call.
	GasCost     hts.Gas
	ViewGasCost hts.Gas
}

// DefaultConfig is the configuration used if none is provided. It honours
// top-level signatures.
var DefaultConfig = Config{
	TopLevelSignatures:          true,
	LazyCreationEnabled:         true,
	ChargeFeesToHollowReceivers: true,
	SystemAccountBoundary:       750,
	MaxTokensPerAccount:         1000,
	MaxNftMetadataBytes:         100,
	HollowAutoRenewSeconds:      7776000,
	HollowMaxAutoAssociations:   1,
	LazyCreatedMemo:             "lazy-created account",
	GasCost:                     25_000,
	ViewGasCost:                 100,
}

// RestrictedConfig is the security model in which only contract key
// components authorize precompile calls. Transfers not authorized this way
// fall back to allowances granted to the calling contract.
var RestrictedConfig = func() Config {
	config := DefaultConfig
	config.TopLevelSignatures = false
	config.AllowFallbackToApprovals = true
	config.ChargeFeesToHollowReceivers = false
	return config
}()

// Configs lists the registered configurations by name.
var Configs = map[string]Config{
	"v1": DefaultConfig,
	"v2": RestrictedConfig,
}

// Registers the precompile configurations in the dispatcher registry.
func init() {
	for name, config := range Configs {
		config := config
		err := hts.RegisterDispatcherFactory(name, func(custom any) (hts.Dispatcher, error) {
			if custom == nil {
				return NewDispatcher(config), nil
			}
			c, ok := custom.(Config)
			if !ok {
				return nil, fmt.Errorf("invalid configuration type %T", custom)
			}
			return NewDispatcher(c), nil
		})
		if err != nil {
			panic(err)
		}
	}
}
