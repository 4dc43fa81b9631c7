//go:build !release

package consts

const Debug = true
