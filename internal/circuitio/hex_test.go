package circuitio

import (
	"encoding/json"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

func TestFieldHexRoundTrip(t *testing.T) {
	var e fr.Element
	e.SetInt64(123456789)
	wrapped := FromElement(e)

	b, err := json.Marshal(wrapped)
	require.NoError(t, err)

	var back FieldHex
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, back.Element().Equal(&e))
}

func TestG1HexRoundTrip(t *testing.T) {
	_, _, g1gen, _ := bls12381.Generators()
	wrapped := FromG1(g1gen)

	b, err := json.Marshal(wrapped)
	require.NoError(t, err)

	var back G1Hex
	require.NoError(t, json.Unmarshal(b, &back))
	got := back.Point()
	require.True(t, got.Equal(&g1gen))
}

func TestGlobalWireRefRoundTrip(t *testing.T) {
	ref := GlobalWireRef{SubcircuitID: 3, LocalWireIdx: 7}
	b, err := json.Marshal(ref)
	require.NoError(t, err)
	require.JSONEq(t, `[3,7]`, string(b))

	var back GlobalWireRef
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, ref, back)
}
