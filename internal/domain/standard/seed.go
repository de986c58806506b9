package standard

// SeedRows is the enterprise standard the product ships with. It is used to
// bootstrap a tenant that has no standard set yet; after that it is ordinary
// editable data.
func SeedRows() []MasterRow {
	return []MasterRow{
		{
			Question:       "Do you hold a valid ISO 27001 certification or SOC 2 Type II report?",
			PassAnswer:     "Yes, active ISO 27001 or SOC 2 Type II.",
			ConsiderAnswer: "SOC 2 Type I or in progress.",
			FailAnswer:     "No certification.",
		},
		{
			Question:       "What information will the organisation be processing?",
			PassAnswer:     "Public data or Internal data only.",
			ConsiderAnswer: "Confidential data.",
			FailAnswer:     "Strictly Confidential / Secret.",
		},
		{
			Question:       "Is sensitive PII or special category data included?",
			PassAnswer:     "No.",
			ConsiderAnswer: "Yes, but tokenized/masked.",
			FailAnswer:     "Yes, stored in plain text.",
		},
		{
			Question:       "Where is the data hosted (Data Residency)?",
			PassAnswer:     "UK or EU.",
			ConsiderAnswer: "US (with DPF certification).",
			FailAnswer:     "China, Russia, or undisclosed.",
		},
		{
			Question:       "Is data encrypted at rest?",
			PassAnswer:     "Yes, AES-256.",
			ConsiderAnswer: "Yes, but older standard (e.g. 3DES).",
			FailAnswer:     "No encryption.",
		},
		{
			Question:       "Is data encrypted in transit?",
			PassAnswer:     "Yes, TLS 1.2 or higher.",
			ConsiderAnswer: "TLS 1.1 or legacy protocols.",
			FailAnswer:     "No encryption (HTTP/FTP).",
		},
		{
			Question:       "Is Multi-Factor Authentication (MFA) enforced for all access?",
			PassAnswer:     "Yes, enforced for all users.",
			ConsiderAnswer: "Admins only.",
			FailAnswer:     "No MFA.",
		},
		{
			Question:       "Do you conduct annual penetration testing by a third party?",
			PassAnswer:     "Yes, by third-party annually.",
			ConsiderAnswer: "Internal scans only.",
			FailAnswer:     "No.",
		},
		{
			Question:       "Do you perform regular vulnerability scanning?",
			PassAnswer:     "Yes, quarterly or continuous.",
			ConsiderAnswer: "Ad-hoc / Irregular.",
			FailAnswer:     "No.",
		},
		{
			Question:       "Are background checks performed on all employees?",
			PassAnswer:     "Yes, all employees.",
			ConsiderAnswer: "Key roles only.",
			FailAnswer:     "No.",
		},
		{
			Question:       "Do you have a documented Incident Response Plan?",
			PassAnswer:     "Yes, tested annually.",
			ConsiderAnswer: "Yes, untested.",
			FailAnswer:     "No.",
		},
		{
			Question:       "Do you have a formal Data Retention and Disposal Policy?",
			PassAnswer:     "Yes, automated disposal.",
			ConsiderAnswer: "Manual process.",
			FailAnswer:     "No policy.",
		},
		{
			Question:       "Is there a formal Change Management process?",
			PassAnswer:     "Yes, with approval workflows.",
			ConsiderAnswer: "Informal process.",
			FailAnswer:     "No.",
		},
		{
			Question:       "Do you segregate customer data (Multi-tenancy controls)?",
			PassAnswer:     "Yes, logical segregation.",
			ConsiderAnswer: "Yes, but shared database.",
			FailAnswer:     "No segregation.",
		},
		{
			Question:       "Do you have a Business Continuity / Disaster Recovery plan?",
			PassAnswer:     "Yes, tested annually.",
			ConsiderAnswer: "Yes, untested.",
			FailAnswer:     "No.",
		},
	}
}
