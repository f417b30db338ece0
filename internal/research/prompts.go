package research

const factsPromptTemplate = `You are analyzing the company: %s

Based on the following web content, extract structured information about this company:

%s

Extract the following information in JSON format:
{
    "company_name": "Full company name",
    "homepage": "Company homepage URL",
    "description": "Brief description of what the company does",
    "value_proposition": "Main value proposition or claims",
    "technology": "Core technology or innovation",
    "industry": "Primary industry/sector",
    "stage": "Company stage (e.g., prototype, pilot, production)",
    "technical_claims": ["List of specific technical claims with numbers if available"],
    "social_proof": {
        "accelerators": ["List of accelerators/incubators"],
        "grants": ["List of grants or awards"],
        "customers": ["List of known customers or pilots"],
        "investors": ["List of investors if mentioned"],
        "advisors": ["List of notable advisors if mentioned"]
    },
    "evidence_urls": ["List of URLs with supporting evidence"]
}

Be thorough and extract specific claims with numbers when available.`

const bottleneckPromptTemplate = `Analyze the following company and identify strategic bottlenecks that could prevent successful scale-up.

Company: %s
Description: %s
Technology: %s
Stage: %s
Key Claims: %s

Identify 3-7 bottlenecks across these categories: technical, market, regulatory, economics, capital, integration, ehs.

Severity scale: 5 critical blocker with no workaround, 4 major challenge, 3 moderate and standard for the stage, 2 minor with a known solution, 1 low risk.

Return JSON:
{
    "bottlenecks": [
        {
            "id": "B1",
            "type": "technical",
            "location": "brief location description",
            "severity_raw": 4,
            "severity_adj": 4,
            "verified": "verified|partial|unverified",
            "owner": "who needs to solve this",
            "timeframe": "estimated timeframe like 0-24m",
            "evidence_strength": 2,
            "citations": ["URL1", "URL2"]
        }
    ]
}`

const readinessPromptTemplate = `Score the readiness levels for this company:

Company: %s
Description: %s
Technology: %s
Stage: %s
Key Claims: %s

Provide scores (1-9) for TRL (Technology Readiness Level), IRL (Integration Readiness Level), ORL (Operations Readiness Level), and RCL (Regulatory/Compliance Level). Use the standard scales: 1-2 basic research, 3-4 proof of concept, 5-6 lab/pilot validation, 7-8 operational demonstration, 9 proven in production.

Return JSON:
{
    "TRL": 5.0,
    "IRL": 3.5,
    "ORL": 3.0,
    "RCL": 1.5,
    "reasoning": "Brief explanation of scores"
}`

const likelyLovelyPromptTemplate = `Score the Likely & Lovely metrics for this company's main claims:

Company: %s
Description: %s
Technical Claims: %s
Social Proof: %s
Evidence Sources: %d

Provide scores (1-5):
E (Evidence): 1 only company claims, 3 third-party mentions, 5 strong independent validation.
T (Theory): 1 no theoretical basis, 3 plausible mechanism, 5 well-established peer-reviewed theory.
SP (Social Proof): 1 no credible validation, 3 reputable accelerator or grants, 5 major customers and significant funding.
LV (Lovely, impact if true): 1 marginal improvement, 3 significant improvement, 5 transformative for the industry.

Return JSON:
{
    "E": 2,
    "T": 4,
    "SP": 3,
    "LV": 4,
    "reasoning": "Brief explanation of each score"
}`
