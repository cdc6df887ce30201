package prompt

import "fmt"

// GetSystemPrompt sets the forensic-analyst role for the generator.
func GetSystemPrompt() string {
	return "You are a forensic document analyst specialising in detecting fraudulent business documents, insurance policies, and certifications. Provide detailed, objective analysis."
}

// GetUserPrompt wraps the extracted document text with the checks the
// analyst must cover. Keyword extraction downstream depends on the response
// staying free text, so the prompt asks for prose, not a schema.
func GetUserPrompt(documentType, content string) string {
	return fmt.Sprintf(`Analyse this %s document for authenticity and fraud indicators:

Document Content:
%s

Provide a detailed analysis covering:
1. Document structure and formatting consistency
2. Language patterns and professional terminology usage
3. Dates, addresses, and contact information validity
4. Compliance with Australian standards and regulations
5. Red flags or suspicious elements
6. Overall authenticity assessment

Focus on identifying:
- Inconsistent formatting or fonts
- Suspicious language patterns
- Invalid Australian addresses or contact details
- Incorrect business registration formats
- Unusual document structure
- Generic or template-like content
- Missing required information for this document type`, documentType, content)
}
