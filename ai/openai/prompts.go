package openai

import "fmt"

// systemPrompt is the fixed instruction accompanying every condensation call.
const systemPrompt = "You are a helpful assistant."

// condensePromptTemplate instructs the model to rewrite the latest question
// as a standalone question, using the history for context only.
const condensePromptTemplate = `Given a chat history (delimited by <hs></hs>) and the latest user question which might reference context in the chat history, formulate a standalone question which can be understood without the chat history. Do NOT answer the question, just reformulate it if needed and otherwise return it as is.
------
<hs>
%s
</hs>
------
Question: %s
Summary:`

// buildCondensePrompt renders the condensation template with the given
// history and question.
func buildCondensePrompt(history, question string) string {
	return fmt.Sprintf(condensePromptTemplate, history, question)
}
