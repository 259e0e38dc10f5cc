// Package prompt assembles completion prompts from document content,
// page captions, conversation context, and the user's question.
// Everything here is a pure function over its inputs.
package prompt

import (
	"fmt"
	"strings"
)

// Caption is a page image description fed into a prompt.
type Caption struct {
	Page        int
	Description string
}

// Turn is one prior conversation message.
type Turn struct {
	Role    string
	Content string
}

const (
	noTextPlaceholder     = "No text extracted from the PDF."
	noCaptionsPlaceholder = "No image descriptions available."

	// ChatHistoryTurns bounds how much conversation context a chat prompt carries.
	ChatHistoryTurns = 5
)

// ImageSummary renders captions one per line, skipping empty descriptions.
func ImageSummary(captions []Caption) string {
	var lines []string
	for i, c := range captions {
		desc := strings.TrimSpace(c.Description)
		if desc == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Image %d (page %d): %s", i+1, c.Page, desc))
	}
	if len(lines) == 0 {
		return noCaptionsPlaceholder
	}
	return strings.Join(lines, "\n")
}

// Ask builds the one-shot question prompt. No conversation history.
func Ask(documentText string, captions []Caption, question string) string {
	return fmt.Sprintf(`
You are a knowledgeable and friendly AI assistant designed to help users understand and analyze the contents of a PDF document. Your response must be tailored to the user's specific question and should draw from the PDF's text and image descriptions whenever relevant.

Guidelines for your response:
- If user is greeting or asking for help, respond warmly and offer assistance.
- Address the user's question directly and thoroughly.
- Use the PDF's extracted text and image descriptions as primary sources.
- If needed, add relevant background knowledge to help clarify the answer.
- Be clear, concise, and user-friendly. Use simple language when explaining complex concepts.
- If the content is not found in the PDF, politely acknowledge it and guide the user accordingly.
- You may use bullet points, numbered lists, or paragraphs to improve readability.

==============================
PDF Text Content:
%s

Image Descriptions from Local Model:
%s

User's Question / Request:
%s
==============================

Now, provide a helpful, accurate, and well-structured response based on the above.
`, textOrPlaceholder(documentText), ImageSummary(captions), question)
}

// Chat builds the multi-turn prompt, truncating history to the last
// ChatHistoryTurns turns (the just-appended user message included).
func Chat(documentText string, captions []Caption, history []Turn, message string) string {
	recent := history
	if len(recent) > ChatHistoryTurns {
		recent = recent[len(recent)-ChatHistoryTurns:]
	}
	var historyLines []string
	for _, t := range recent {
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}

	return fmt.Sprintf(`
You are a knowledgeable and friendly AI assistant designed to help users understand and analyze the contents of a PDF document. Your response must be tailored to the user's specific question and should draw from the PDF's text and image descriptions whenever relevant.
Provide structured, well-organized responses that are easy to read and understand.

Guidelines for your response:
- If user is greeting or asking for help, respond warmly and offer assistance.
- Address the user's question directly and thoroughly.
- Use the PDF's extracted text and image descriptions as primary sources.
- If needed, add relevant background knowledge to help clarify the answer.
- Be clear, concise, and user-friendly. Use simple language when explaining complex concepts.
- If the content is not found in the PDF, politely acknowledge it and guide the user accordingly.
- You may use bullet points, numbered lists, or paragraphs to improve readability.

RESPONSE FORMAT GUIDELINES:
- Use clear headings followed by colons (e.g., "Key Points:", "Summary:", "Analysis:")
- Use bullet points for lists of items
- Use numbered lists (1., 2., 3.) for step-by-step processes
- Highlight important information with phrases like "Key Point:" or "Important:"
- Structure your response with logical sections
- Use simple, clear language

CONTENT SOURCES:
PDF Text Content:
%s

PDF Description From Local Model:
%s

Recent conversation context:
%s

USER QUESTION:
%s

Provide a comprehensive, well-structured response that directly addresses the user's question while being easy to read and understand.
`, textOrPlaceholder(documentText), ImageSummary(captions), strings.Join(historyLines, "\n"), message)
}

// Notes builds the note-generation prompt from document content and any
// recent conversation context.
func Notes(title, documentText string, captions []Caption, conversationContext string) string {
	return fmt.Sprintf(`
You are an expert note-taking assistant. Create comprehensive, well-structured notes from the following PDF content.

INSTRUCTIONS:
- Create detailed, organized notes that capture all key information
- Use clear headings and subheadings
- Include bullet points for important details
- Add summaries for each major section
- Highlight key concepts, definitions, and important facts
- Include any relevant examples or case studies mentioned
- Structure the notes in a logical, easy-to-follow format

DOCUMENT INFORMATION:
Title: %s

PDF TEXT CONTENT:
%s

IMAGES AND DIAGRAMS:
%s

RECENT CONVERSATION CONTEXT (if any):
%s

Please generate comprehensive notes that would be useful for studying, reference, or sharing with others. Format the notes with clear structure using headers, bullet points, and numbered lists where appropriate.
`, title, textOrPlaceholder(documentText), ImageSummary(captions), conversationContext)
}

func textOrPlaceholder(text string) string {
	if strings.TrimSpace(text) == "" {
		return noTextPlaceholder
	}
	return text
}
