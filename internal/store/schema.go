package store

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS scenarios (
    name                 TEXT PRIMARY KEY,
    fixed_costs          REAL NOT NULL,
    price                REAL NOT NULL,
    variable_cost        REAL NOT NULL,
    initial_units        INTEGER NOT NULL,
    monthly_growth_rate  REAL NOT NULL,
    months               INTEGER NOT NULL,
    saved_at             TEXT NOT NULL
);
`

const schemaMySQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    name                 VARCHAR(128) NOT NULL PRIMARY KEY,
    fixed_costs          DOUBLE NOT NULL,
    price                DOUBLE NOT NULL,
    variable_cost        DOUBLE NOT NULL,
    initial_units        BIGINT NOT NULL,
    monthly_growth_rate  DOUBLE NOT NULL,
    months               BIGINT NOT NULL,
    saved_at             VARCHAR(32) NOT NULL
)
`
