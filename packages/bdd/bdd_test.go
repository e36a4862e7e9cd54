package bdd

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suiterun/suiterun/packages/core/harness"
	"github.com/suiterun/suiterun/packages/core/suite"
)

func pass(ctx context.Context) error { return nil }

func TestSuite_NestedDescribe(t *testing.T) {
	var setups atomic.Int32

	s := New("shop")
	s.Describe("cart", func(s *Suite) {
		s.BeforeEach(func(ctx context.Context) error { setups.Add(1); return nil })
		s.It("adds items", pass)
		s.Describe("checkout", func(s *Suite) {
			s.It("charges the card", pass)
		})
	})

	names := make([]string, 0, 2)
	for _, tc := range s.Harness().Tests() {
		names = append(names, tc.Name)
	}
	assert.Equal(t, []string{
		"shop > cart > adds items",
		"shop > cart > checkout > charges the card",
	}, names)

	res, err := s.Run(context.Background(), harness.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Passed)
	// cart's beforeEach guards its own test and the nested one
	assert.Equal(t, int32(2), setups.Load())
}

func TestSuite_Chaining(t *testing.T) {
	s := New("chained").
		It("a", pass).
		ItIgnored("b", pass).
		It("c", func(ctx context.Context) error { return errors.New("bad") })

	res, err := s.Run(context.Background(), harness.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passed)
	assert.Equal(t, 1, res.Ignored)
	assert.Equal(t, 1, res.Failed)
}

func TestSuite_Only(t *testing.T) {
	s := New("")
	s.It("ordinary", func(ctx context.Context) error { return errors.New("must not run") })
	s.ItOnly("focused", pass)

	res, err := s.Run(context.Background(), harness.Options{})
	require.NoError(t, err)
	assert.True(t, res.UsedOnly)
	assert.Equal(t, 1, res.Passed)
	assert.Equal(t, 0, res.Failed)
}

func TestSuite_CaseRecordForm(t *testing.T) {
	s := New("")
	s.Case(suite.Test{Name: "record", Fn: pass, Ignore: true})

	res, err := s.Run(context.Background(), harness.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Ignored)
}

func TestSuite_InvalidRegistrationPanics(t *testing.T) {
	s := New("")
	assert.Panics(t, func() { s.It("", pass) })
	assert.Panics(t, func() { s.It("no fn", nil) })
}
