package service

import "fmt"

// receiptPrompt instructs the vision model to emit the receipt schema as bare
// JSON. The model is told to answer with a plain string when the image does
// not look like a receipt, so a non-JSON reply is a legitimate outcome that
// recovery rejects cleanly.
const receiptPrompt = `Analyze the receipt image and extract the following information in JSON format:
{
  "date": "date in YYYY-MM-DD format",
  "total": number (total amount),
  "items": [
    {
      "description": "item description",
      "price": number (item price)
    }
  ],
  "vendorName": "store/vendor name"
}

Important:

Return ONLY valid JSON, without any code fences or explanations.
Prices must be numbers (not strings).
If some information is missing, use reasonable default values.
For the date, use the YYYY-MM-DD format.
Item descriptions should be clear and concise.
If the image does not contain information similar to a receipt, return an appropriate message as a string.`

// classificationPrompt builds the topic/emotion/tags instruction for a
// transcript. The listed vocabularies are examples, not closed sets, and the
// item-count ranges are guidance only; validation accepts any non-empty
// arrays.
func classificationPrompt(transcription string) string {
	return fmt.Sprintf(`Analyze the following transcribed audio text and classify it according to the specified categories.

Text to analyze: %q

Classify according to the following categories:

1. Topic - What is the sentence about?
Choose one or two of the following options, but if nothing fits, come up with your own topic:
- Workload
- Team
- Meetings
- Conflict
- Time Management
- Leadership
- Well-being

2. Emotion - What emotions are expressed?
Choose one or more of the following but if nothing fits, come up with your own emotion:
- Fatigue
- Satisfaction
- Frustration
- Anxiety
- Relief
- Uncertainty
- Motivation

3. Tags - Add short tags (keywords) summarizing the message.
Choose or invent up to 10 short tags from examples like:
burnout_warning, task_completion, team_conflict, needs_support, motivation_spike, missed_deadline, workload_concern, positive_feedback, stress_indicator, productivity_boost

Return in this exact JSON format:
{
  "topic": ["Topic1", "Topic2"],
  "emotion": ["Emotion1", "Emotion2"],
  "tags": ["tag1", "tag2", "tag3"]
}

Important:
- Topic array should contain 1-2 items maximum
- Emotion array can contain multiple items
- Tags array should contain 3-10 relevant tags
- All values must be from the specified categories or follow the tag naming pattern
- Return ONLY valid JSON without any code fences or explanations
- If the transcribed audio text does not contain information similar to a meeting recording, return an appropriate message as a string.`, transcription)
}
