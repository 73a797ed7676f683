package sqlstore

// meal_products carries no foreign keys: links are deleted independently of
// their meal or product.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	name              TEXT    NOT NULL,
	calories_per_100g INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS meals (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS meal_products (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	grams      INTEGER NOT NULL CHECK (grams > 0),
	meal_id    INTEGER NOT NULL,
	product_id INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meal_products_meal ON meal_products(meal_id);
CREATE INDEX IF NOT EXISTS idx_meal_products_product ON meal_products(product_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
	id                BIGSERIAL PRIMARY KEY,
	name              TEXT      NOT NULL,
	calories_per_100g INTEGER   NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS meals (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT      NOT NULL
);

CREATE TABLE IF NOT EXISTS meal_products (
	id         BIGSERIAL PRIMARY KEY,
	grams      INTEGER   NOT NULL CHECK (grams > 0),
	meal_id    BIGINT    NOT NULL,
	product_id BIGINT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meal_products_meal ON meal_products(meal_id);
CREATE INDEX IF NOT EXISTS idx_meal_products_product ON meal_products(product_id);
`
