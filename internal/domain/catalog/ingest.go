package catalog

// Ingestion payloads arrive in two shapes: raw extraction output queued
// by the extraction service, and rows already saved to the recipe
// database. IngestItem is the tagged variant covering both; Projection
// is the single place the common fields are pulled out.

// IngestKind discriminates the variant held by an IngestItem
type IngestKind string

const (
	IngestKindQueueExtraction IngestKind = "queue_extraction"
	IngestKindSavedRecipe     IngestKind = "saved_recipe"
)

// ExtractedIngredient is one raw ingredient from the extraction service.
// It never carries canonical IDs or critical/staple flags.
type ExtractedIngredient struct {
	RawName string
	Amount  float64
	Unit    string
}

// QueueExtraction is the payload shape produced by the extraction service
type QueueExtraction struct {
	Title       string
	ImageURL    string
	Ingredients []ExtractedIngredient
}

// IngestItem is the discriminated union over ingestion payload shapes
type IngestItem struct {
	Kind  IngestKind
	Queue *QueueExtraction
	Saved *SavedRecipe
}

// RecipeProjection is the common shape every ingestion path reduces to
type RecipeProjection struct {
	Title       string
	ImageURL    string
	Ingredients []ExtractedIngredient
}

// Projection extracts the common {title, image, ingredients} view from
// whichever variant the item holds.
func (it IngestItem) Projection() (RecipeProjection, error) {
	switch it.Kind {
	case IngestKindQueueExtraction:
		if it.Queue == nil {
			return RecipeProjection{}, ErrInvalidIngestItem
		}
		return RecipeProjection{
			Title:       it.Queue.Title,
			ImageURL:    it.Queue.ImageURL,
			Ingredients: it.Queue.Ingredients,
		}, nil

	case IngestKindSavedRecipe:
		if it.Saved == nil {
			return RecipeProjection{}, ErrInvalidIngestItem
		}
		lines := it.Saved.Ingredients()
		ingredients := make([]ExtractedIngredient, len(lines))
		for i, line := range lines {
			ingredients[i] = ExtractedIngredient{
				RawName: line.RawName,
				Amount:  line.Amount,
				Unit:    line.Unit,
			}
		}
		return RecipeProjection{
			Title:       it.Saved.Title(),
			ImageURL:    it.Saved.ImageURL(),
			Ingredients: ingredients,
		}, nil

	default:
		return RecipeProjection{}, ErrInvalidIngestItem
	}
}
