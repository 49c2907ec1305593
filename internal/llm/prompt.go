package llm

// extractionPrompt asks for the 35 numbered work-order fields.
const extractionPrompt = `Extract data from the attached construction work order with the highest possible accuracy. Return the following numbered fields exactly as they appear:

01. WO NO.: The work order number (usually top right)
02. Builder Name: The builder or company name (usually under "Builder/Company Name")
03. Project Name: The project or phase name
04. Month: The month from the date field
05. Year: The year from the date field (may be abbreviated)
06. Company: The landscaping or service company name
07. Description: The full text of all work described in the center of the document

For service fields, do NOT use the circled category words (like "Labour" or "Excavator"). Use the specific service type written underneath the circled category instead.

08. Service1: The first specific service type
09. D1: Date for the first line of service 1
10. Q1: Quantity for the first line of service 1
11. H1: Hours for the first line of service 1
12. D2: Date for the second line of service 1 (if any)
13. Q2: Quantity for the second line of service 1 (if any)
14. H2: Hours for the second line of service 1 (if any)
15. Service2: The second specific service type
16. D3: Date for the first line of service 2
17. Q3: Quantity for the first line of service 2
18. H3: Hours for the first line of service 2
19. D4: Date for the second line of service 2 (if any)
20. Q4: Quantity for the second line of service 2 (if any)
21. H4: Hours for the second line of service 2 (if any)
22. Service3: The third specific service type
23. D5: Date for the first line of service 3
24. Q5: Quantity for the first line of service 3
25. H5: Hours for the first line of service 3
26. D6: Date for the second line of service 3 (if any)
27. Q6: Quantity for the second line of service 3 (if any)
28. H6: Hours for the second line of service 3 (if any)
29. Service4: The fourth specific service type (if any)
30. D7: Date for the first line of service 4 (if any)
31. Q7: Quantity for the first line of service 4 (if any)
32. H7: Hours for the first line of service 4 (if any)
33. D8: Date for the second line of service 4 (if any)
34. Q8: Quantity for the second line of service 4 (if any)
35. H8: Hours for the second line of service 4 (if any)

Respond with the numbered fields only, one per line. Fill empty fields with N/A but keep their numbers. Put the description in quotation marks.`
