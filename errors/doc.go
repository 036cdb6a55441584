// Package errors is a helper package for the error type used throughout the
// chipset core. It defines the ChipsetError type, an implementation of the
// error interface that pairs an error category (Errno) with a set of format
// arguments so that error messages stay consistent regardless of where in
// the call stack the error is constructed.
//
//	err := errors.New(errors.RomSizeInvalid, 12345)
//	fmt.Println(err) // "ROM image has unsupported size: 12345 bytes"
//
// The categories map to the error kinds enumerated in the core's error
// handling design: ConfigurationInvalid, RomMissing, SnapshotIncompatible,
// AddressViolation and BlitterMisconfigured, plus a handful of narrower
// categories used internally by individual components.
package errors
