package scoring

// Criterion is one fixed dimension of argument quality, scored 1-10.
type Criterion string

// The five criteria every evaluation is scored against.
const (
	CriterionClarity        Criterion = "clarity"
	CriterionEvidence       Criterion = "evidence"
	CriterionReasoning      Criterion = "reasoning"
	CriterionPersuasiveness Criterion = "persuasiveness"
	CriterionRelevance      Criterion = "relevance"
)

// Criteria returns the scored criteria in rubric order.
func Criteria() []Criterion {
	return []Criterion{
		CriterionClarity,
		CriterionEvidence,
		CriterionReasoning,
		CriterionPersuasiveness,
		CriterionRelevance,
	}
}

// Description returns the rubric description used when prompting the evaluator.
func (c Criterion) Description() string {
	switch c {
	case CriterionClarity:
		return "How clear and understandable the argument is"
	case CriterionEvidence:
		return "The quality and relevance of evidence and examples provided"
	case CriterionReasoning:
		return "The logical coherence and soundness of reasoning"
	case CriterionPersuasiveness:
		return "How convincing and compelling the overall argument is"
	case CriterionRelevance:
		return "How relevant the argument is to the debate topic"
	default:
		return ""
	}
}
