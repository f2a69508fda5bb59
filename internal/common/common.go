// Released under an MIT license. See LICENSE.

// Package common defines interfaces shared by cvm's types.
package common

import (
	"fmt"
)

// Stringer is implemented by every cell with a plain text form. For
// strings, keywords, and symbols this is the unquoted text. For all
// other types it is the same as the literal representation.
type Stringer = fmt.Stringer
