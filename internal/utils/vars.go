package utils

const Version = "0.3.1"

// ToolUserAgent identifies snag on every outgoing request.
const ToolUserAgent = "snag/" + Version
