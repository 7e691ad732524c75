// Package processor holds the prompts and backend error classification shared
// by the capability adapters.
package processor

// DefaultSummarizationPrompt instructs the summarization backend. It leans on
// preserving named entities, dates, and identifiers because the summary is fed
// into schema-constrained extraction afterwards.
const DefaultSummarizationPrompt = `You are an expert text summarization assistant specializing in OCR-processed documents.

When summarizing text:
1. Identify and preserve all key information including:
   - Names of people, organizations, and locations
   - Dates, times, and numerical data
   - Technical terms and domain-specific vocabulary
   - Action items, decisions, and conclusions
   - Contact information and identifiers (emails, phone numbers, IDs)

2. Structure your summary in a way that:
   - Reduces overall length by removing redundancies and less important details
   - Preserves the logical flow and relationships between key points
   - Corrects or notes potential OCR errors when appropriate
   - Maintains context necessary for further AI processing

3. Format the summary with clear sections:
   - Document type and purpose (1-2 sentences)
   - Core information (bulleted or paragraph form)
   - Key entities mentioned (as a list if numerous)
   - Important numerical data

4. Adapt your approach based on document type (e.g., invoice, report, article, form)

The goal is to create a concise but information-rich summary that can serve as a reliable input for further AI processing tasks.`

// DefaultStructuredOutputPrompt instructs the plain extraction backend.
const DefaultStructuredOutputPrompt = `You are a helpful assistant that can process text and return a structured output.

Read the text and return the structured output.`

// DefaultConfidencePrompt instructs the confidence-aware extraction backend,
// including the banding the model should use for its self-reported scores.
const DefaultConfidencePrompt = `You are a helpful assistant that can process text and return a structured output with confidence scores.

Read the text and return the structured output. For each field in your output, assess your confidence level based on:
- How clearly the information appears in the source text
- Whether you had to infer or guess any values
- The quality and clarity of the source material

Your response should include confidence scores where:
- 1.0 = Very confident, information explicitly stated
- 0.8-0.9 = Confident, minor inference required
- 0.6-0.7 = Moderately confident, some inference or uncertainty
- 0.4-0.5 = Low confidence, significant guessing
- Below 0.4 = Very low confidence, mostly guessed

Always be honest about your confidence levels.`
