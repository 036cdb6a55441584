package errors

var messages = map[Errno]string{
	ConfigurationInvalid: "configuration invalid: %s",
	RomMissing:           "ROM image missing: %s",
	RomSizeInvalid:       "ROM image has unsupported size: %d bytes",

	SnapshotIncompatible: "snapshot incompatible: %s",
	SnapshotCorrupt:      "snapshot corrupt: %s",

	AddressViolation:   "address violation: %s",
	UnrecognisedRegion: "unrecognised memory region for address %#08x",

	BlitterMisconfigured: "blitter misconfigured: %s (coerced to %v)",

	PowerOffRequired: "operation requires the machine to be powered off: %s",
	AllocationFailed: "allocation failed: %s",
}
