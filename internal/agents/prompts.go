package agents

import "fmt"

func profileAnalyzerSystemPrompt() string {
	return `You are an expert HR analyst for a platform connecting clients with service professionals.
Your task is to analyze the provided professional profile information and document text.
Focus on identifying concrete skills, specializations, years of experience in specific areas,
and overall expertise.`
}

func buildSummaryPrompt(corpus string) string {
	return fmt.Sprintf(`Analyze the following professional information:
---
%s
---
Based on all the provided text, please generate a concise summary of the professional's expertise,
key skills, and specializations. The summary should be suitable for a quick overview by a potential
client or an administrator. Maximum 200 words. Output only the summary text.`, corpus)
}

func buildSkillsPrompt(corpus string) string {
	return fmt.Sprintf(`Professional information:
---
%s
---
Extract the key skills and specializations as a comma-separated list.
For example: Yoga Instruction, Strength Training, Nutrition Planning, Injury Rehabilitation.
Only list distinct skills. Output only the list, nothing else.`, corpus)
}

func matcherSystemPrompt() string {
	return `You are a sophisticated AI matching engine for a platform connecting clients with service professionals.
Your goal is to find the top 3 best-matched professionals for a given client's service request.
You will be provided with the client's service request details and a list of available, verified
professionals with their profiles (including summaries, skills, experience).

Analyze the request against each professional's data. Consider:
1. Relevance of skills and specializations to the client's stated needs.
2. Years of experience in relevant areas.
3. Keywords in the client's request matching the professional's profile or summarized skills.

Output a JSON object containing:
1. A general "rankingRationale" explaining the key factors considered for the overall ranking (max 100 words).
2. A list called "rankedProfessionals" with the top 3 professionals. Each element is an object with:
   - "professionalId": the ID of the professional exactly as given in the input.
   - "rank": their rank (1, 2, or 3).
   - "individualRationale": optional, a very brief (max 30 words) explanation for this rank.

Ensure the output is valid JSON and nothing else. Only include professionals from the provided list.
If fewer than 3 professionals are suitable, return as many as are suitable. If no professionals are
suitable, return an empty list for rankedProfessionals.`
}

func buildMatcherPrompt(category, description, budget, profilesData string) string {
	return fmt.Sprintf(`Client's Service Request:
Category: %s
Description: %s
Budget: %s

Available Professionals (ID, Name, Profession, Years of Experience, Summarized Skills, About, Other Skills):
---
%s
---
Please provide the top 3 matches in the specified JSON format.`, category, description, budget, profilesData)
}
