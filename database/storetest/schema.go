package storetest

// Schema mirrors the production MySQL tables in a dialect SQLite accepts.
const Schema = `
CREATE TABLE lead_sources (
	source_id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_name TEXT NOT NULL UNIQUE,
	source_category TEXT NOT NULL DEFAULT 'other',
	attribution_window_days INTEGER DEFAULT 30,
	cost_per_lead REAL DEFAULT 0.00,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	is_active BOOLEAN DEFAULT 1
);

CREATE TABLE prospects (
	prospect_id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	company_name TEXT,
	job_title TEXT,
	phone TEXT,
	industry TEXT,
	lead_source_id INTEGER,
	lead_score INTEGER DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	FOREIGN KEY (lead_source_id) REFERENCES lead_sources(source_id)
);

CREATE TABLE funnel_stages (
	stage_id INTEGER PRIMARY KEY AUTOINCREMENT,
	stage_name TEXT NOT NULL,
	stage_order INTEGER NOT NULL,
	stage_description TEXT,
	expected_duration_days INTEGER DEFAULT 7,
	is_active BOOLEAN DEFAULT 1
);

CREATE TABLE prospect_journey (
	journey_id INTEGER PRIMARY KEY AUTOINCREMENT,
	prospect_id INTEGER NOT NULL,
	stage_id INTEGER NOT NULL,
	entered_at TIMESTAMP NOT NULL,
	exited_at TIMESTAMP NULL,
	duration_hours REAL NULL,
	notes TEXT,
	FOREIGN KEY (prospect_id) REFERENCES prospects(prospect_id),
	FOREIGN KEY (stage_id) REFERENCES funnel_stages(stage_id)
);

CREATE TABLE discovery_calls (
	call_id INTEGER PRIMARY KEY AUTOINCREMENT,
	prospect_id INTEGER NOT NULL,
	scheduled_at TIMESTAMP NOT NULL,
	completed_at TIMESTAMP NULL,
	call_status TEXT DEFAULT 'scheduled',
	qualification_score INTEGER DEFAULT 0,
	FOREIGN KEY (prospect_id) REFERENCES prospects(prospect_id)
);

CREATE TABLE proposals (
	proposal_id INTEGER PRIMARY KEY AUTOINCREMENT,
	prospect_id INTEGER NOT NULL,
	proposal_amount REAL NOT NULL,
	proposal_status TEXT DEFAULT 'draft',
	proposal_sent_at TIMESTAMP NULL,
	FOREIGN KEY (prospect_id) REFERENCES prospects(prospect_id)
);

CREATE TABLE contracts (
	contract_id INTEGER PRIMARY KEY AUTOINCREMENT,
	prospect_id INTEGER NOT NULL,
	proposal_id INTEGER,
	contract_value REAL NOT NULL,
	monthly_recurring_revenue REAL DEFAULT 0.00,
	contract_status TEXT DEFAULT 'active',
	signed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (prospect_id) REFERENCES prospects(prospect_id),
	FOREIGN KEY (proposal_id) REFERENCES proposals(proposal_id)
);
`
