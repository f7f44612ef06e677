package imagga

// Bit is a 0/1 flag, as the API expects.
type Bit int

// Flag values.
const (
	Off Bit = 0
	On  Bit = 1
)

// Response wraps every result.
type Response[T any] struct {
	Result T      `json:"result"`
	Status Status `json:"status"`
}

// Status reports whether the API handled the request.
type Status struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Success reports whether the status type is "success".
func (s Status) Success() bool {
	return s.Type == "success"
}

// Language holds localized text.
type Language struct {
	EN string `json:"en"`
}

// ImageOptions selects the image to analyze, by URL or by upload id.
type ImageOptions struct {
	ImageURL      string `url:"image_url,omitempty" validate:"omitempty,url"`
	ImageUploadID string `url:"image_upload_id,omitempty"`
}

// Coordinates is a rectangle given by two corners.
type Coordinates struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Area is a rectangle within an image.
type Area struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	XMin   int `json:"xmin"`
	YMin   int `json:"ymin"`
	XMax   int `json:"xmax"`
	YMax   int `json:"ymax"`
}

// TagsOptions are the query parameters of Tags.
type TagsOptions struct {
	ImageOptions
	Verbose         Bit     `url:"verbose,omitempty"`
	Limit           int     `url:"limit,omitempty" validate:"gte=0"`
	Threshold       float64 `url:"threshold,omitempty" validate:"gte=0,lte=100"`
	DecreaseParents int     `url:"decrease_parents,omitempty"`
}

// TagsResponse is the result of Tags.
type TagsResponse struct {
	Tags []Tag `json:"tags"`
}

// Tag is a tag suggested for an image, with its confidence.
type Tag struct {
	Confidence float64  `json:"confidence"`
	Tag        Language `json:"tag"`
}

// CategorizersResponse lists the available categorizers.
type CategorizersResponse struct {
	Categorizers []Categorizer `json:"categorizers"`
}

// Categorizer describes one categorizer.
type Categorizer struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
}

// CategoriesOptions are the query parameters of Categories.
type CategoriesOptions struct {
	ImageOptions
	SaveIndex string `url:"save_index,omitempty"`
	SaveID    string `url:"save_id,omitempty"`
}

// CategoriesResponse is the result of Categories.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// Category is a category assigned to an image.
type Category struct {
	Confidence float64  `json:"confidence"`
	Name       Language `json:"name"`
}

// CroppingsOptions are the query parameters of Croppings.
type CroppingsOptions struct {
	ImageOptions
	// Resolution is "WxH", e.g. "100x100".  Several may be comma-separated.
	Resolution     string  `url:"resolution,omitempty"`
	NoScaling      Bit     `url:"no_scaling,omitempty"`
	RectPercentage float64 `url:"rect_percentage,omitempty"`
	ImageResult    Bit     `url:"image_result,omitempty"`
}

// CroppingsResponse is the result of Croppings.
type CroppingsResponse struct {
	Croppings []Cropping `json:"croppings"`
}

// Cropping is a suggested crop area.
type Cropping struct {
	Coordinates
	TargetWidth  int `json:"target_width"`
	TargetHeight int `json:"target_height"`
}

// ColorsFeatureType is "object" or "overall".
type ColorsFeatureType string

const (
	FeatureObject  ColorsFeatureType = "object"
	FeatureOverall ColorsFeatureType = "overall"
)

// ColorsOptions are the query parameters of Colors.
type ColorsOptions struct {
	ImageOptions
	ExtractOverallColors Bit               `url:"extract_overall_colors,omitempty"`
	ExtractObjectColors  Bit               `url:"extract_object_colors,omitempty"`
	OverallCount         int               `url:"overall_count,omitempty"`
	SeparatedCount       int               `url:"separated_count,omitempty"`
	Deterministic        Bit               `url:"deterministic,omitempty"`
	FeaturesType         ColorsFeatureType `url:"features_type,omitempty"`
}

// ColorsResponse is the result of Colors.
type ColorsResponse struct {
	Colors Colors `json:"colors"`
}

// Colors describes the colors of an image.
type Colors struct {
	BackgroundColors      []Color `json:"background_colors"`
	ForegroundColors      []Color `json:"foreground_colors"`
	ImageColors           []Color `json:"image_colors"`
	ColorVariance         float64 `json:"color_variance"`
	ObjectPercentage      float64 `json:"object_percentage"`
	ColorPercentThreshold float64 `json:"color_percent_threshold"`
}

// Color is one color found in an image.
type Color struct {
	R                           int     `json:"r"`
	G                           int     `json:"g"`
	B                           int     `json:"b"`
	HTMLCode                    string  `json:"html_code"`
	Percent                     float64 `json:"percent"`
	ClosestPaletteColor         string  `json:"closest_palette_color"`
	ClosestPaletteColorHTMLCode string  `json:"closest_palette_color_html_code"`
	ClosestPaletteColorParent   string  `json:"closest_palette_color_parent"`
	ClosestPaletteDistance      float64 `json:"closest_palette_distance"`
}

// FacesDetectionsOptions are the query parameters of FacesDetections.
type FacesDetectionsOptions struct {
	ImageOptions
	ReturnFaceID         Bit `url:"return_face_id,omitempty"`
	ReturnFaceAttributes Bit `url:"return_face_attributes,omitempty"`
}

// FacesDetectionsResponse is the result of FacesDetections.
type FacesDetectionsResponse struct {
	Faces []Face `json:"faces"`
}

// Face is a face found in an image.
type Face struct {
	Confidence  float64         `json:"confidence"`
	Coordinates Area            `json:"coordinates"`
	FaceID      string          `json:"face_id,omitempty"`
	Attributes  []FaceAttribute `json:"attributes"`
}

// FaceAttribute is an attribute estimated for a face.
type FaceAttribute struct {
	Type       string  `json:"type"`
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// FacesSimilarityOptions names the two faces to compare.
type FacesSimilarityOptions struct {
	FaceID       string `url:"face_id" validate:"required"`
	SecondFaceID string `url:"second_face_id" validate:"required"`
}

// FacesSimilarityResponse is the result of FacesSimilarity.
type FacesSimilarityResponse struct {
	Score float64 `json:"score"`
}

// FacesGroupingsOptions lists the face ids to group.  The API wants at
// least MinGroupingFaces of them.
type FacesGroupingsOptions struct {
	Faces []string `json:"faces"`
}

// MinGroupingFaces is the fewest faces FacesGroupings accepts.
const MinGroupingFaces = 5

// TicketsResponse holds the ticket of an asynchronous FacesGroupings job.
type TicketsResponse struct {
	TicketID string `json:"ticket_id"`
}

// TextResponse is the result of Text.
type TextResponse struct {
	Text []Text `json:"text"`
}

// Text is a piece of text found in an image.
type Text struct {
	Data        string `json:"data"`
	Coordinates Area   `json:"coordinates"`
}

// UsageOptions are the query parameters of Usage.
type UsageOptions struct {
	History     Bit `url:"history,omitempty"`
	Concurrency Bit `url:"concurrency,omitempty"`
}

// UsageResponse reports the account's usage.
type UsageResponse struct {
	BillingPeriodStart string           `json:"billing_period_start"`
	BillingPeriodEnd   string           `json:"billing_period_end"`
	Concurrency        UsageConcurrency `json:"concurrency"`
	Daily              map[string]int   `json:"daily"`
	DailyFor           string           `json:"daily_for"`
	DailyProcessed     int              `json:"daily_processed"`
	DailyRequests      int              `json:"daily_requests"`
	LastUsage          int64            `json:"last_usage"`
	Monthly            map[string]int   `json:"monthly"`
	MonthlyLimit       int              `json:"monthly_limit"`
	MonthlyProcessed   int              `json:"monthly_processed"`
	MonthlyRequests    int              `json:"monthly_requests"`
	TotalProcessed     int              `json:"total_processed"`
	TotalRequests      int              `json:"total_requests"`
	Weekly             map[string]int   `json:"weekly"`
	WeeklyProcessed    int              `json:"weekly_processed"`
	WeeklyRequests     int              `json:"weekly_requests"`
}

// UsageConcurrency reports the concurrent request limits.
type UsageConcurrency struct {
	Max int `json:"max"`
	Now int `json:"now"`
}

// BarcodesResponse is the result of Barcodes.
type BarcodesResponse struct {
	Barcodes []Barcode `json:"barcodes"`
}

// Barcode is a barcode found in an image.
type Barcode struct {
	Coordinates
	Data string `json:"data"`
	Type string `json:"type"`
}
