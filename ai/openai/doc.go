// Package openai implements the ai interfaces against an Azure-flavored
// OpenAI-compatible API. Models are addressed by deployment identifier;
// the same resource endpoint, key, and API version serve both the
// embedding and the chat-completion deployments.
package openai
