package models

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
)

var (
	ReformulatePromptTemplate = `Given a chat history and the latest user question which might reference context in the chat history, formulate a standalone question which can be understood without the chat history. Do NOT answer the question, just reformulate it if needed and otherwise return it as is.

Chat history:
%s
Latest question: %s
`

	AnswerSystemPrompt = `You are a helpful assistant. Use the provided context to answer the query. If the context does not contain the answer, say you do not know.`

	AnswerPromptTemplate = `Context:
%s
Question: %s`
)
