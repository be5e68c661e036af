// Package numeric holds the floating-point equality setting shared by the
// generated comparison helpers.
package numeric

// Tolerance bounds how many units in the last place two floats may be apart
// and still compare equal. The rendered harness of each language applies it.
type Tolerance struct {
	MaxULP uint64 `yaml:"maxUlp" json:"maxUlp"`
}

// DefaultTolerance accepts neighbours one unit in the last place apart.
var DefaultTolerance = Tolerance{MaxULP: 1}
