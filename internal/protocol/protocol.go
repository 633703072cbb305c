package protocol

import "fmt"

// ContentTypeText is the only content kind produced by tool calls.
const ContentTypeText = "text"

// Fixed result texts.
const (
	MissingURLText = "Missing { url }"
)

// ToolCallRequest is a single tool invocation handed to the dispatcher.
type ToolCallRequest struct {
	// Name is the requested tool name.
	Name string
	// Arguments are the decoded tool arguments.
	Arguments map[string]any
}

// URL returns the string-valued "url" argument.
func (r ToolCallRequest) URL() (string, bool) {
	if r.Arguments == nil {
		return "", false
	}
	url, ok := r.Arguments["url"].(string)
	return url, ok
}

// TextContent is one text entry of a tool result.
type TextContent struct {
	// Type is always ContentTypeText.
	Type string `json:"type"`
	// Text is the message.
	Text string `json:"text"`
}

// ToolCallResult is the response of a tool invocation.
type ToolCallResult struct {
	// Content is the ordered list of result entries.
	Content []TextContent `json:"content"`
}

// Text builds a result with a single text entry.
func Text(text string) ToolCallResult {
	return ToolCallResult{Content: []TextContent{{Type: ContentTypeText, Text: text}}}
}

// NavigatedText confirms a visited URL.
func NavigatedText(url string) string {
	return fmt.Sprintf("Navigated to %s", url)
}

// ScreenshotText reports the captured image size.
func ScreenshotText(size int) string {
	return fmt.Sprintf("Screenshot bytes: %d", size)
}

// UnknownToolText reports a tool name without an action.
func UnknownToolText(name string) string {
	return "Unknown tool " + name
}
