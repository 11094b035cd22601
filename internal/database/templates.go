package database

import (
	"log"

	"github.com/skyseen/ITAM/internal/models"
)

// seedDocumentTemplates installs the three compliance forms required for
// every asset handover. Existing templates are left untouched.
func seedDocumentTemplates() {
	var count int64
	if err := DB.Model(&models.DocumentTemplate{}).Count(&count).Error; err != nil {
		log.Printf("failed to check document templates: %v", err)
		return
	}
	if count > 0 {
		return
	}

	templates := []models.DocumentTemplate{
		{
			DocumentType: models.DocDeclarationForm,
			TemplateName: "Declaration Form for Company IT Asset",
			TemplateContent: `<div class="doc-form">
  <h3>Declaration Form for Company IT Asset</h3>
  <p>I hereby acknowledge receipt or assignment of the following company device property.</p>
  <p><strong>Acknowledgement:</strong> I have received the above mentioned assets and understand
  they remain company property under my possession for carrying out my office work. I will adhere
  to company policies on the use and return of IT assets during my employment period.</p>
  <p class="doc-footnote">This is an electronic document. Your digital signature is legally binding.</p>
</div>`,
			FieldsSchema: `[
  {"name":"device_type","label":"Device Type","type":"text","required":true},
  {"name":"device_model","label":"Device Model","type":"text","required":true},
  {"name":"asset_tag","label":"Asset Tag","type":"text","required":true},
  {"name":"serial_number","label":"Serial Number","type":"text","required":true},
  {"name":"employee_name","label":"Employee Name","type":"text","required":true},
  {"name":"employee_id","label":"Employee ID","type":"text","required":true},
  {"name":"department","label":"Department","type":"text","required":true},
  {"name":"acknowledgement_date","label":"Date","type":"date","required":true}
]`,
			IsActive: true,
			Version:  "1.0",
		},
		{
			DocumentType: models.DocITOrientation,
			TemplateName: "IT Orientation Acknowledgment Form",
			TemplateContent: `<div class="doc-form">
  <h3>IT Orientation Acknowledgment Form</h3>
  <p>From IT orientation, I have learned the following topics:</p>
  <ol>
    <li>Computer login account expiration practice</li>
    <li>Email account protection practice</li>
    <li>Software installation request control</li>
    <li>Portable storage device control</li>
    <li>Workstation screen lock out practice</li>
    <li>Malware safety practice</li>
    <li>Email security best practice</li>
  </ol>
  <p class="doc-footnote">Your digital signature confirms completion of IT orientation.</p>
</div>`,
			FieldsSchema: `[
  {"name":"employee_name","label":"Employee Name","type":"text","required":true},
  {"name":"employee_id","label":"Employee ID","type":"text","required":true},
  {"name":"completion_date","label":"Date of Completion","type":"date","required":true},
  {"name":"login_practice","label":"Computer login account expiration practice","type":"checkbox","required":true},
  {"name":"email_protection","label":"Email account protection practice","type":"checkbox","required":true},
  {"name":"software_control","label":"Software installation request control","type":"checkbox","required":true},
  {"name":"storage_control","label":"Portable storage device control","type":"checkbox","required":true},
  {"name":"screen_lock","label":"Workstation screen lock out practice","type":"checkbox","required":true},
  {"name":"malware_safety","label":"Malware safety practice","type":"checkbox","required":true},
  {"name":"email_security","label":"Email security best practice","type":"checkbox","required":true}
]`,
			IsActive: true,
			Version:  "1.0",
		},
		{
			DocumentType: models.DocHandoverForm,
			TemplateName: "Equipment Takeover/Handover Form",
			TemplateContent: `<div class="doc-form">
  <h3>Equipment Takeover / Handover Form</h3>
  <p><strong>Objective:</strong> to ensure the item(s) collected or returned are handed over
  correctly and acknowledged.</p>
  <h4>Accessories Checklist</h4>
  <ul>
    <li>Charger</li><li>Mouse</li><li>Keyboard</li>
    <li>Thumb Drive</li><li>CD/DVD</li><li>Laptop Bag</li>
  </ul>
  <p>We have checked and verified that the above items are collected/returned.</p>
</div>`,
			FieldsSchema: `[
  {"name":"staff_name","label":"Staff Name","type":"text","required":true},
  {"name":"dept_location","label":"Department/Location","type":"text","required":true},
  {"name":"email","label":"Email","type":"email","required":true},
  {"name":"emp_id","label":"Employee ID","type":"text","required":true},
  {"name":"contact","label":"Contact","type":"text","required":true},
  {"name":"device_type","label":"Device Type","type":"text","required":true},
  {"name":"device_model","label":"Device Model","type":"text","required":true},
  {"name":"asset_number","label":"Asset Number","type":"text","required":true},
  {"name":"serial_number","label":"Serial Number","type":"text","required":true},
  {"name":"operation_type","label":"Operation Type","type":"text","required":true},
  {"name":"charger","label":"Charger","type":"checkbox","required":false},
  {"name":"mouse","label":"Mouse","type":"checkbox","required":false},
  {"name":"keyboard","label":"Keyboard","type":"checkbox","required":false},
  {"name":"thumb_drive","label":"Thumb Drive","type":"checkbox","required":false},
  {"name":"cd_dvd","label":"CD/DVD","type":"checkbox","required":false},
  {"name":"laptop_bag","label":"Laptop Bag","type":"checkbox","required":false},
  {"name":"handover_date","label":"Handover Date","type":"date","required":true},
  {"name":"takeover_date","label":"Takeover Date","type":"date","required":true}
]`,
			IsActive: true,
			Version:  "1.0",
		},
	}

	for _, t := range templates {
		if err := DB.Create(&t).Error; err != nil {
			log.Printf("failed to create document template %s: %v", t.DocumentType, err)
		}
	}
	log.Printf("seeded %d document templates", len(templates))
}
