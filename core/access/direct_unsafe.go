//go:build !purego

package access

func probeDirect() bool { return selfTest() }
