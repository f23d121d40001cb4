package ai

import "fmt"

const insightsPrompt = `Please analyze the following meeting transcript and extract the following information:

- A concise summary of the main points and decisions made.
- A list of clear action items, specifying the owner if mentioned.
- A list of key questions that were raised but not resolved.

Format the output as a JSON object with exactly these three keys: "summary", "action_items", "key_questions".

For action_items, please provide an array of objects, each with "action" and "owner" fields.
For key_questions, please provide an array of strings.

Please provide only the JSON object without any additional text or markdown formatting.

Transcript:
%s
`

// BuildInsightsPrompt returns the extraction prompt for transcript
func BuildInsightsPrompt(transcript string) string {
	return fmt.Sprintf(insightsPrompt, transcript)
}
