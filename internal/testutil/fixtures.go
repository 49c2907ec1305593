package testutil

// SampleFieldResponse is a complete 35-field OCR response for an AE3 work
// order with two filled service slots.
const SampleFieldResponse = `
01. WO NO.: 12345
02. Builder Name: BROOKFIELD HOMES
03. Project Name: PINEHURST
04. Month: MAY
05. Year: 2018
06. Company: AE3 Excavating
07. Description: "Loading fill from stockpile"
08. Service1: 325 DL
09. Service1 Date1: 16
10. Service1 Qty1: X1
11. Service1 Hours1: 10
12. Service1 Date2: 17
13. Service1 Qty2: X1
14. Service1 Hours2: 10
15. Service2: TRI-AXLE
16. Service2 Date1: 16
17. Service2 Qty1: X2
18. Service2 Hours1: 22
19. Service2 Date2: N/A
20. Service2 Qty2: N/A
21. Service2 Hours2: N/A
22. Service3: N/A
23. Service3 Date1: N/A
24. Service3 Qty1: N/A
25. Service3 Hours1: N/A
26. Service3 Date2: N/A
27. Service3 Qty2: N/A
28. Service3 Hours2: N/A
29. Service4: N/A
30. Service4 Date1: N/A
31. Service4 Qty1: N/A
32. Service4 Hours1: N/A
33. Service4 Date2: N/A
34. Service4 Qty2: N/A
35. Service4 Hours2: N/A
`

// SampleAE3Response is a categorization response for the sample work order.
// It exercises substitution, merging and the catch-all rewrite.
const SampleAE3Response = `Service: Loading Fill From Stockpile
Blocks/Lots/Units: Lot 67

Service: Loading Fill To Lots
Blocks/Lots/Units: Lot 68

Service: Digging A Trench
Blocks/Lots/Units: Not specified`

// SampleAeonResponse is an Aeon categorization response with repeated
// settlement repairs.
const SampleAeonResponse = `Service: Settlement Repairs
Blocks/Lots/Units: Lot 12

Service: Sod Installation
Blocks/Lots/Units: Block 4

Service: Settlement Repairs
Blocks/Lots/Units: Lot 14`
