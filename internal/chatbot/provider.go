package chatbot

import (
	"context"
	"fmt"
)

// Provider is one external model the resolver can ask. Reply returns the
// trimmed answer, or "" on any failure; providers never surface errors.
type Provider interface {
	Name() string
	Reply(ctx context.Context, message string) string
}

// systemPrompt pins the assistant persona and grounds it in a fresh
// knowledge snapshot.
func systemPrompt(knowledge string) string {
	return fmt.Sprintf(`Bạn là trợ lý ảo của một phòng khám đa khoa tại Việt Nam. Hãy trả lời thân thiện, ngắn gọn (tối đa 150 từ) và chỉ dựa trên thông tin dưới đây. Nếu không chắc chắn, hãy mời khách gọi hotline.

Thông tin phòng khám:
%s`, knowledge)
}

// buildPrompt is the single-message form used by providers without a
// separate system role.
func buildPrompt(knowledge, message string) string {
	return fmt.Sprintf("%s\n\nCâu hỏi của khách: %s", systemPrompt(knowledge), message)
}
