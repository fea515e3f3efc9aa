package projects

import "encoding/json"

// AlertScript returns the JavaScript that raises msg as a blocking alert.
func AlertScript(msg string) string {
	quoted, _ := json.Marshal(msg)
	return "alert(" + string(quoted) + ")"
}
