package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsx-go/jsxc"
	"github.com/jsx-go/jsxc/internal/cache"
)

func TestCompileCachesResult(t *testing.T) {
	c, err := cache.New(cache.DefaultSize)
	require.NoError(t, err)

	out1, err := c.Compile(`const x = <div/>;`, nil)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	out2, err := c.Compile(`const x = <div/>;`, nil)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
	require.Equal(t, 1, c.Len())
}

func TestCompileDistinguishesOptions(t *testing.T) {
	c, err := cache.New(cache.DefaultSize)
	require.NoError(t, err)

	_, err = c.Compile(`const x = <div/>;`, nil)
	require.NoError(t, err)
	_, err = c.Compile(`const x = <div/>;`, &jsxc.Options{Pragma: "h"})
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
}

func TestCompileCachesErrors(t *testing.T) {
	c, err := cache.New(cache.DefaultSize)
	require.NoError(t, err)

	_, err1 := c.Compile(`<div></span>`, nil)
	require.Error(t, err1)

	_, err2 := c.Compile(`<div></span>`, nil)
	require.Error(t, err2)
	require.Equal(t, err1, err2)
	require.Equal(t, 1, c.Len())
}

func TestInvalidate(t *testing.T) {
	c, err := cache.New(cache.DefaultSize)
	require.NoError(t, err)

	_, err = c.Compile(`const x = <div/>;`, nil)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Invalidate(`const x = <div/>;`, nil)
	require.Equal(t, 0, c.Len())
}

func TestKeyStableForSameInputs(t *testing.T) {
	k1 := cache.Key("const x = <div/>;", &jsxc.Options{Pragma: "h", DisableUseStrict: true})
	k2 := cache.Key("const x = <div/>;", &jsxc.Options{Pragma: "h", DisableUseStrict: true})
	require.Equal(t, k1, k2)

	k3 := cache.Key("const x = <div/>;", &jsxc.Options{Pragma: "h"})
	require.NotEqual(t, k1, k3)
}
