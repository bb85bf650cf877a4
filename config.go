package menuplanner

type PlannerConfig struct {
	RecipesPath        string `env:"RECIPES_PATH,default=artifacts/recipes.yaml"`
	CategoriesPath     string `env:"CATEGORIES_PATH,default=artifacts/categories.yaml"`
	MenusDir           string `env:"MENUS_DIR,default=menus"`
	OutputPath         string `env:"OUTPUT_PATH,default=shopping.md"`
	SilentSection      string `env:"SILENT_SECTION,default=Andet"`
	FoldIngredientCase bool   `env:"FOLD_INGREDIENT_CASE,default=false"`
	MaxRecipeDepth     int    `env:"MAX_RECIPE_DEPTH,default=32"`
	SlackWebhookURL    string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel       string `env:"SLACK_CHANNEL,default=#madplan"`
}

type StoreConfig struct {
	S3Bucket        string `env:"ARTIFACTS_S3_BUCKET"`
	RecipesS3Key    string `env:"ARTIFACTS_RECIPES_S3_KEY,default=recipes.yaml"`
	CategoriesS3Key string `env:"ARTIFACTS_CATEGORIES_S3_KEY,default=categories.yaml"`
	DatabaseURL     string `env:"DATABASE_URL"`
}
