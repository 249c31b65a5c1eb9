// Package keymap holds the canonical key vocabulary and native injection codes.
package keymap

// keysyms maps canonical codes to X11 keysyms.
var keysyms = map[string]uint32{
	"KeyA": 0x61, "KeyB": 0x62, "KeyC": 0x63, "KeyD": 0x64,
	"KeyE": 0x65, "KeyF": 0x66, "KeyG": 0x67, "KeyH": 0x68,
	"KeyI": 0x69, "KeyJ": 0x6a, "KeyK": 0x6b, "KeyL": 0x6c,
	"KeyM": 0x6d, "KeyN": 0x6e, "KeyO": 0x6f, "KeyP": 0x70,
	"KeyQ": 0x71, "KeyR": 0x72, "KeyS": 0x73, "KeyT": 0x74,
	"KeyU": 0x75, "KeyV": 0x76, "KeyW": 0x77, "KeyX": 0x78,
	"KeyY": 0x79, "KeyZ": 0x7a,

	"Digit0": 0x30, "Digit1": 0x31, "Digit2": 0x32, "Digit3": 0x33,
	"Digit4": 0x34, "Digit5": 0x35, "Digit6": 0x36, "Digit7": 0x37,
	"Digit8": 0x38, "Digit9": 0x39,

	"Enter":     0xff0d,
	"Escape":    0xff1b,
	"Backspace": 0xff08,
	"Tab":       0xff09,
	"Space":     0x20,

	"ShiftLeft":    0xffe1,
	"ShiftRight":   0xffe2,
	"ControlLeft":  0xffe3,
	"ControlRight": 0xffe4,
	"AltLeft":      0xffe9,
	"AltRight":     0xffea,
	"MetaLeft":     0xffe7,
	"MetaRight":    0xffe8,
	"CapsLock":     0xffe5,

	"F1": 0xffbe, "F2": 0xffbf, "F3": 0xffc0, "F4": 0xffc1,
	"F5": 0xffc2, "F6": 0xffc3, "F7": 0xffc4, "F8": 0xffc5,
	"F9": 0xffc6, "F10": 0xffc7, "F11": 0xffc8, "F12": 0xffc9,

	"Minus":        0x2d,
	"Equal":        0x3d,
	"BracketLeft":  0x5b,
	"BracketRight": 0x5d,
	"Backslash":    0x5c,
	"Semicolon":    0x3b,
	"Quote":        0x27,
	"Backquote":    0x60,
	"Comma":        0x2c,
	"Period":       0x2e,
	"Slash":        0x2f,

	"ArrowLeft":  0xff51,
	"ArrowUp":    0xff52,
	"ArrowRight": 0xff53,
	"ArrowDown":  0xff54,

	"Insert":   0xff63,
	"Delete":   0xffff,
	"Home":     0xff50,
	"End":      0xff57,
	"PageUp":   0xff55,
	"PageDown": 0xff56,

	"Numpad0": 0xffb0, "Numpad1": 0xffb1, "Numpad2": 0xffb2, "Numpad3": 0xffb3,
	"Numpad4": 0xffb4, "Numpad5": 0xffb5, "Numpad6": 0xffb6, "Numpad7": 0xffb7,
	"Numpad8": 0xffb8, "Numpad9": 0xffb9,
	"NumpadEnter":    0xff8d,
	"NumpadAdd":      0xffab,
	"NumpadSubtract": 0xffad,
	"NumpadMultiply": 0xffaa,
	"NumpadDivide":   0xffaf,
	"NumpadDecimal":  0xffae,
}

// scancodes maps canonical codes to Set 1 scan codes. Extended entries
// are sent with the E0 prefix.
var scancodes = map[string]Scancode{
	"KeyA": {Code: 0x1e}, "KeyB": {Code: 0x30}, "KeyC": {Code: 0x2e}, "KeyD": {Code: 0x20},
	"KeyE": {Code: 0x12}, "KeyF": {Code: 0x21}, "KeyG": {Code: 0x22}, "KeyH": {Code: 0x23},
	"KeyI": {Code: 0x17}, "KeyJ": {Code: 0x24}, "KeyK": {Code: 0x25}, "KeyL": {Code: 0x26},
	"KeyM": {Code: 0x32}, "KeyN": {Code: 0x31}, "KeyO": {Code: 0x18}, "KeyP": {Code: 0x19},
	"KeyQ": {Code: 0x10}, "KeyR": {Code: 0x13}, "KeyS": {Code: 0x1f}, "KeyT": {Code: 0x14},
	"KeyU": {Code: 0x16}, "KeyV": {Code: 0x2f}, "KeyW": {Code: 0x11}, "KeyX": {Code: 0x2d},
	"KeyY": {Code: 0x15}, "KeyZ": {Code: 0x2c},

	"Digit1": {Code: 0x02}, "Digit2": {Code: 0x03}, "Digit3": {Code: 0x04}, "Digit4": {Code: 0x05},
	"Digit5": {Code: 0x06}, "Digit6": {Code: 0x07}, "Digit7": {Code: 0x08}, "Digit8": {Code: 0x09},
	"Digit9": {Code: 0x0a}, "Digit0": {Code: 0x0b},

	"Enter":     {Code: 0x1c},
	"Escape":    {Code: 0x01},
	"Backspace": {Code: 0x0e},
	"Tab":       {Code: 0x0f},
	"Space":     {Code: 0x39},

	"ShiftLeft":    {Code: 0x2a},
	"ShiftRight":   {Code: 0x36},
	"ControlLeft":  {Code: 0x1d},
	"ControlRight": {Code: 0x1d, Extended: true},
	"AltLeft":      {Code: 0x38},
	"AltRight":     {Code: 0x38, Extended: true},
	"MetaLeft":     {Code: 0x5b, Extended: true},
	"MetaRight":    {Code: 0x5c, Extended: true},
	"CapsLock":     {Code: 0x3a},

	"F1": {Code: 0x3b}, "F2": {Code: 0x3c}, "F3": {Code: 0x3d}, "F4": {Code: 0x3e},
	"F5": {Code: 0x3f}, "F6": {Code: 0x40}, "F7": {Code: 0x41}, "F8": {Code: 0x42},
	"F9": {Code: 0x43}, "F10": {Code: 0x44}, "F11": {Code: 0x57}, "F12": {Code: 0x58},

	"Minus":        {Code: 0x0c},
	"Equal":        {Code: 0x0d},
	"BracketLeft":  {Code: 0x1a},
	"BracketRight": {Code: 0x1b},
	"Backslash":    {Code: 0x2b},
	"Semicolon":    {Code: 0x27},
	"Quote":        {Code: 0x28},
	"Backquote":    {Code: 0x29},
	"Comma":        {Code: 0x33},
	"Period":       {Code: 0x34},
	"Slash":        {Code: 0x35},

	"ArrowLeft":  {Code: 0x4b, Extended: true},
	"ArrowUp":    {Code: 0x48, Extended: true},
	"ArrowRight": {Code: 0x4d, Extended: true},
	"ArrowDown":  {Code: 0x50, Extended: true},

	"Insert":   {Code: 0x52, Extended: true},
	"Delete":   {Code: 0x53, Extended: true},
	"Home":     {Code: 0x47, Extended: true},
	"End":      {Code: 0x4f, Extended: true},
	"PageUp":   {Code: 0x49, Extended: true},
	"PageDown": {Code: 0x51, Extended: true},

	"Numpad0": {Code: 0x52}, "Numpad1": {Code: 0x4f}, "Numpad2": {Code: 0x50}, "Numpad3": {Code: 0x51},
	"Numpad4": {Code: 0x4b}, "Numpad5": {Code: 0x4c}, "Numpad6": {Code: 0x4d}, "Numpad7": {Code: 0x47},
	"Numpad8": {Code: 0x48}, "Numpad9": {Code: 0x49},
	"NumpadEnter":    {Code: 0x1c, Extended: true},
	"NumpadAdd":      {Code: 0x4e},
	"NumpadSubtract": {Code: 0x4a},
	"NumpadMultiply": {Code: 0x37},
	"NumpadDivide":   {Code: 0x35, Extended: true},
	"NumpadDecimal":  {Code: 0x53},
}

// x11Buttons maps mouse button names to core pointer buttons.
var x11Buttons = map[string]byte{
	LeftMouseButton:   1,
	MiddleMouseButton: 2,
	RightMouseButton:  3,
}

// winButtons maps mouse button names to MOUSEEVENTF_* down/up flags.
var winButtons = map[string]MouseFlags{
	LeftMouseButton:   {Down: 0x0002, Up: 0x0004},
	RightMouseButton:  {Down: 0x0008, Up: 0x0010},
	MiddleMouseButton: {Down: 0x0020, Up: 0x0040},
}
