package constant

// Placeholder markers baked into the RAMS template. Each marker is consumed
// exactly once during assembly.
const (
	MarkerRiskTable       = "RISK_TABLE"
	MarkerSequence        = "SEQUENCE"
	MarkerMethodStatement = "METHOD_STATEMENT"
)

// Interview length. The interactive interview collects exactly this many
// answers, interchangeable with the single-shot endpoint's answer list.
const InterviewQuestionCount = 20

// Risk assessment table columns, in template order. Hazard lines from the
// generator carry these five fields tab-separated.
var RiskTableColumns = []string{
	"Hazard",
	"Persons at Risk",
	"Undesired Event",
	"Control Measures",
	"Actioned By",
}

// RiskTableFieldCount is the number of tab-separated fields per hazard line.
const RiskTableFieldCount = 5

// SystemPromptTruncationSentinel marks the start of plugin-only instructions
// inside the system prompt file; everything from the sentinel onward is
// stripped before the prompt is sent to the model.
const SystemPromptTruncationSentinel = "RAMS Section Submission Logic"

const QuestionGenerationPromptV1 = `You are preparing a site-specific RAMS (Risk Assessment & Method Statement) interview.

Task description from the user:
%s

Generate EXACTLY %d short interview questions that gather the site-specific details needed to write the RAMS document (location, access, isolations, plant, materials, environment, emergency arrangements, personnel and supervision).

Rules:
- One question per line.
- Number each question "1." through "%d.".
- No preamble, no closing remarks, questions only.`

const RiskAssessmentPromptV1 = `Below are the %d site-specific answers from the user:
%s

Now generate the **Risk Assessment Table** section content ONLY. Include at least 20 unique task-specific hazards. For each hazard, provide entries for Hazard, Persons at Risk, Undesired Event, Control Measures, and Actioned By, **separated by a tab**. Do NOT include any numbering or bullets (the system will number the hazards).`

const SequencePromptV1 = `Below are the %d site-specific answers from the user:
%s

Generate the **Sequence of Activities** section content (minimum 600 words). Provide a detailed step-by-step narrative from site access, through the task, to reinstatement, including isolations, controls, and hold points. Use multiple paragraphs for clarity.`

const MethodStatementPromptV1 = `Below are the %d site-specific answers from the user:
%s

Generate the **Method Statement** section content (minimum 750 words). Make sure to cover all required subsections: Scope of Works, Roles and Responsibilities, Hold Points, Operated Plant, Tools and Equipment, Materials, PPE, Rescue Plan (with five scenarios), Applicable Site Standards, CESWI Clauses, Quality Control, and Environmental Considerations. Provide a well-structured and detailed narrative covering all these aspects.`
