// Package core provides parameter sets and validation for ML-KEM.
package core

import (
	"fmt"

	mlkem "github.com/BackendStack21/ml-kem-go"
)

// MLKEM512Params is the parameter set for NIST security category 1
// (FIPS 203, Table 2).
var MLKEM512Params = mlkem.Params{
	Level: mlkem.MLKEM512,
	K:     2,
	Eta1:  3,
	Eta2:  2,
	Du:    10,
	Dv:    4,
}

// MLKEM768Params is the parameter set for NIST security category 3.
var MLKEM768Params = mlkem.Params{
	Level: mlkem.MLKEM768,
	K:     3,
	Eta1:  2,
	Eta2:  2,
	Du:    10,
	Dv:    4,
}

// MLKEM1024Params is the parameter set for NIST security category 5.
var MLKEM1024Params = mlkem.Params{
	Level: mlkem.MLKEM1024,
	K:     4,
	Eta1:  2,
	Eta2:  2,
	Du:    11,
	Dv:    5,
}

// Levels lists the supported security levels in increasing strength order.
func Levels() []mlkem.SecurityLevel {
	return []mlkem.SecurityLevel{mlkem.MLKEM512, mlkem.MLKEM768, mlkem.MLKEM1024}
}

// GetParams returns the parameter set for the given security level.
func GetParams(level mlkem.SecurityLevel) (mlkem.Params, error) {
	switch level {
	case mlkem.MLKEM512:
		return MLKEM512Params, nil
	case mlkem.MLKEM768:
		return MLKEM768Params, nil
	case mlkem.MLKEM1024:
		return MLKEM1024Params, nil
	default:
		return mlkem.Params{}, fmt.Errorf("%w: unknown security level %q", mlkem.ErrInvalidParameterSet, level)
	}
}

// ValidateParams validates the parameter set for consistency. Only the three
// standardized combinations are meaningful, but the checks are structural so
// that a hand-built Params fails loudly instead of producing garbage keys.
func ValidateParams(params mlkem.Params) error {
	if params.K < 2 || params.K > 4 {
		return fmt.Errorf("%w: module rank k must be 2, 3 or 4", mlkem.ErrInvalidParameterSet)
	}
	if params.Eta1 != 2 && params.Eta1 != 3 {
		return fmt.Errorf("%w: eta1 must be 2 or 3", mlkem.ErrInvalidParameterSet)
	}
	if params.Eta2 != 2 {
		return fmt.Errorf("%w: eta2 must be 2", mlkem.ErrInvalidParameterSet)
	}
	if params.Du != 10 && params.Du != 11 {
		return fmt.Errorf("%w: du must be 10 or 11", mlkem.ErrInvalidParameterSet)
	}
	if params.Dv != 4 && params.Dv != 5 {
		return fmt.Errorf("%w: dv must be 4 or 5", mlkem.ErrInvalidParameterSet)
	}
	return nil
}
