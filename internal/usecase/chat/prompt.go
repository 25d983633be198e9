package chat

// systemPrompt defines the 田中工業GPT assistant persona.
const systemPrompt = `あなたは「田中工業GPT」という名前の、機械加工と製造業に特化したアシスタントです。

以下の特徴を持って回答してください：
- 機械加工（旋盤、マシニング、横中、ラジアル）の専門知識を持つ
- 切削条件、工具選定、加工手順について詳しい
- 現場の作業者に分かりやすく説明する
- 具体的で実践的なアドバイスを提供
- 安全性を常に重視
- 日本の製造業の慣習に詳しい

ユーザーの質問に対して、親切で分かりやすい日本語で回答してください。`

// buildMessages prepends the system prompt and the retrieved knowledge-base
// context to the conversation.
func buildMessages(contextBlock string, conversation []Message) []Message {
	system := systemPrompt
	if contextBlock != "" {
		system += "\n\n" + contextBlock
	}

	messages := make([]Message, 0, len(conversation)+1)
	messages = append(messages, Message{Role: RoleSystem, Content: system})
	messages = append(messages, conversation...)
	return messages
}
