package packet

// Every message carries its opcode in byte 0 and a version byte in byte 1
// for forward compatibility; all multi-byte fields are little-endian in
// declared order.
const Version1 byte = 1

// Client → server opcodes.
const (
	C_OPCODE_VERSION      byte = 10
	C_OPCODE_LOGIN        byte = 12
	C_OPCODE_DEMOLISH     byte = 20
	C_OPCODE_CLEAR_DEBRIS byte = 21
)

// Server → client opcodes.
const (
	S_OPCODE_SERVER_INFO  byte = 110
	S_OPCODE_LOGIN_RESULT byte = 111

	S_OPCODE_SPAWNED               byte = 120
	S_OPCODE_STATE_CHANGED         byte = 121
	S_OPCODE_CONSTRUCTION_PROGRESS byte = 122
	S_OPCODE_UPGRADED              byte = 123
	S_OPCODE_DOWNGRADED            byte = 124
	S_OPCODE_DECONSTRUCTED         byte = 125
	S_OPCODE_DEBRIS_CLEARED        byte = 126

	S_OPCODE_DEMOLISH_RESULT     byte = 127
	S_OPCODE_CLEAR_DEBRIS_RESULT byte = 128
)
