package gateway

type callRequest struct {
	DeviceID string `json:"deviceId"`
	Number   string `json:"number"`
}

type callResponse struct {
	OK        bool   `json:"ok"`
	CommandID string `json:"commandId"`
	DeviceID  string `json:"deviceId"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Reason   string `json:"reason"`
	DeviceID string `json:"deviceId"`
}

// CallResult is the outcome of a dispatched call command.
type CallResult struct {
	DeviceID  string
	CommandID string
}

// DeviceInfo describes a device connected to the gateway.
type DeviceInfo struct {
	DeviceID    string `json:"deviceId"`
	ConnectedAt string `json:"connectedAt"`
}

// DevicesResponse is the reply of GET /devices.
type DevicesResponse struct {
	Count   int          `json:"count"`
	Devices []DeviceInfo `json:"devices"`
}

// Health is the free-form reply of GET /health.
type Health map[string]any

// Uptime returns the "uptime" field in seconds, if present.
func (h Health) Uptime() (float64, bool) {
	v, ok := h["uptime"].(float64)
	return v, ok
}

// ConnectedDevices returns the "connectedDevices" field, if present.
func (h Health) ConnectedDevices() (int, bool) {
	switch v := h["connectedDevices"].(type) {
	case float64:
		return int(v), true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	}

	return 0, false
}
