// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/blob"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

func encodingOf(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return blob.New(null.Or(v[0]).Encode())
}

func hashOf(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	h := encoding.Hash(null.Or(v[0]))

	return blob.New(h[:])
}
