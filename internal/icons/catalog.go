package icons

// catalog maps built-in icon names to terminal glyphs. Keys are matched
// case-sensitively.
var catalog = map[string]string{
	"AppWindow":       "▢",
	"Airplane":        "✈",
	"BankNote":        "💵",
	"Bell":            "🔔",
	"Book":            "📖",
	"Bookmark":        "🔖",
	"Box":             "📦",
	"Bug":             "🐞",
	"Calendar":        "📅",
	"Camera":          "📷",
	"Cart":            "🛒",
	"ChartBar":        "📊",
	"Checkmark":       "✔",
	"Circle":          "●",
	"Clipboard":       "📋",
	"Clock":           "🕒",
	"Cloud":           "☁",
	"Code":            "⌨",
	"CodeBlock":       "⌨",
	"Cog":             "⚙",
	"Desktop":         "🖥",
	"Document":        "📄",
	"Envelope":        "✉",
	"Folder":          "📁",
	"Gear":            "⚙",
	"Gift":            "🎁",
	"Globe":           "🌐",
	"Hammer":          "🔨",
	"Heart":           "♥",
	"House":           "🏠",
	"Image":           "🖼",
	"Key":             "🔑",
	"Link":            "🔗",
	"List":            "☰",
	"Lock":            "🔒",
	"MagnifyingGlass": "🔍",
	"Message":         "💬",
	"Music":           "♫",
	"Network":         "🖧",
	"Person":          "👤",
	"PersonCircle":    "👤",
	"Phone":           "☎",
	"Play":            "▶",
	"Rocket":          "🚀",
	"Server":          "🗄",
	"ShoppingCart":    "🛒",
	"Star":            "★",
	"Tag":             "🏷",
	"Terminal":        "❯",
	"Video":           "🎞",
	"Wallet":          "👛",
	"Wrench":          "🔧",
}
