package ingest

import (
	"fmt"

	"github.com/beevik/etree"
)

// DecodeXML parses an XML-format bureau report and rewrites it into the
// nested map shape the JSON path produces. Expected layout:
//
//	<CreditReport>
//	  <Score>760</Score>
//	  <Customer><FullName>...</FullName></Customer>
//	  <Summary><TotalPastDue>0</TotalPastDue></Summary>
//	  <Accounts>
//	    <Account>
//	      <Institution/><AccountType/><AccountNumber/><Open/><Status/>
//	      <DateOpened/><SanctionAmount/><Balance/><InstallmentAmount/>
//	      <LastPayment/><PastDueAmount/><HighCredit/>
//	      <History>
//	        <Month key="2024-05" paymentStatus="0" assetClassificationStatus="STD"/>
//	      </History>
//	    </Account>
//	  </Accounts>
//	  <Enquiries><Enquiry date="2024-05-01" purpose="Personal Loan"/></Enquiries>
//	</CreditReport>
//
// Missing elements degrade to absent keys; the navigator applies defaults.
func DecodeXML(data []byte) (map[string]interface{}, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	root := doc.FindElement("//CreditReport")
	if root == nil {
		return nil, fmt.Errorf("%w: no CreditReport element", ErrUndecodable)
	}

	cirData := map[string]interface{}{}
	if name := elementText(root, "Customer/FullName"); name != "" {
		cirData["IDAndContactInfo"] = map[string]interface{}{
			"PersonalInfo": map[string]interface{}{
				"Name": map[string]interface{}{"FullName": name},
			},
		}
	}
	if pastDue := elementText(root, "Summary/TotalPastDue"); pastDue != "" {
		cirData["RetailAccountsSummary"] = map[string]interface{}{"TotalPastDue": pastDue}
	}

	var accounts []interface{}
	for _, el := range root.FindElements("Accounts/Account") {
		accounts = append(accounts, accountMap(el))
	}
	cirData["RetailAccountDetails"] = accounts

	var enquiries []interface{}
	for _, el := range root.FindElements("Enquiries/Enquiry") {
		enquiries = append(enquiries, map[string]interface{}{
			"enquiryDate":    el.SelectAttrValue("date", ""),
			"enquiryPurpose": el.SelectAttrValue("purpose", ""),
		})
	}

	reportData := map[string]interface{}{
		"credit_report": map[string]interface{}{
			"CCRResponse": map[string]interface{}{
				"CIRReportDataLst": []interface{}{
					map[string]interface{}{"CIRReportData": cirData},
				},
			},
			"Enquiries": enquiries,
		},
	}
	if score := elementText(root, "Score"); score != "" {
		reportData["credit_score"] = score
	}

	return map[string]interface{}{"reportData": reportData}, nil
}

// accountFields are the scalar account elements copied through verbatim;
// the navigator owns parsing and defaulting.
var accountFields = []string{
	"Institution", "AccountType", "AccountNumber", "Open", "Status",
	"DateOpened", "SanctionAmount", "Balance", "InstallmentAmount",
	"LastPayment", "PastDueAmount", "HighCredit",
}

func accountMap(el *etree.Element) map[string]interface{} {
	acc := map[string]interface{}{}
	for _, field := range accountFields {
		if v := elementText(el, field); v != "" {
			acc[field] = v
		}
	}
	var history []interface{}
	for _, month := range el.FindElements("History/Month") {
		history = append(history, map[string]interface{}{
			"key":                       month.SelectAttrValue("key", ""),
			"PaymentStatus":             month.SelectAttrValue("paymentStatus", ""),
			"AssetClassificationStatus": month.SelectAttrValue("assetClassificationStatus", ""),
		})
	}
	if history != nil {
		acc["History48Months"] = history
	}
	return acc
}

func elementText(parent *etree.Element, path string) string {
	if el := parent.FindElement(path); el != nil {
		return el.Text()
	}
	return ""
}
