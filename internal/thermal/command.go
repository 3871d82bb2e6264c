package thermal

// Device command framing: a fixed header byte, a command ID, one argument
// byte, and a mod-256 checksum over the preceding three bytes.
const (
	commandHeader     = 0x55
	commandEmissivity = 0x01
)

// EmissivityCommand encodes the 4-byte command that sets the device's
// emissivity calibration. Emissivity must already be in 0..100; the
// settings producer guarantees that.
func EmissivityCommand(emissivity int) [4]byte {
	e := byte(emissivity)
	return [4]byte{
		commandHeader,
		commandEmissivity,
		e,
		commandHeader + commandEmissivity + e,
	}
}
